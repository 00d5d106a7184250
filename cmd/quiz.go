package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tkha/tierquiz/internal/access"
	"github.com/tkha/tierquiz/internal/engine"
	"github.com/tkha/tierquiz/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Play one tier on the command line",
	Long: `Generate a question set and answer one tier line by line on stdin.

Multiple-choice answers are a letter or number. Judgment answers are one
T or F per statement in order ("TFTF" or "t f t f") or explicit pairs
("a=t b=f c=t d=f"). Short answers are free text.`,
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().String("subject", "", "Subject id (required)")
	quizCmd.Flags().String("topic", "", "Topic text (required)")
	quizCmd.Flags().String("tier", "mcq", "Tier: mcq, judgment or short")
	quizCmd.Flags().String("key", "", "License key for a locked subject")
	_ = quizCmd.MarkFlagRequired("subject")
	_ = quizCmd.MarkFlagRequired("topic")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	subject, _ := cmd.Flags().GetString("subject")
	topic, _ := cmd.Flags().GetString("topic")
	tierVal, _ := cmd.Flags().GetString("tier")
	key, _ := cmd.Flags().GetString("key")

	tier, ok := quiz.ParseTier(strings.ToLower(tierVal))
	if !ok {
		return fmt.Errorf("invalid tier %q: must be mcq, judgment or short", tierVal)
	}

	svc, err := newServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	if _, ok := svc.cfg.Subject(subject); !ok {
		return fmt.Errorf("unknown subject %q (see `tierquiz subjects`)", subject)
	}
	gate := access.NewGate(svc.cfg)
	if key != "" && !gate.IsUnlocked(subject) {
		if _, err := gate.Unlock(key, subject); err != nil {
			return fmt.Errorf("unlock %s: %w", subject, err)
		}
	}
	if !gate.IsUnlocked(subject) {
		return fmt.Errorf("subject %s is locked; pass --key", subject)
	}

	gen, err := svc.generator(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generating %s / %q...\n\n", subject, topic)
	set, err := gen.Fetch(cmd.Context(), subject, topic)
	if err != nil {
		return err
	}

	ctrl := engine.NewController(gate, svc.log)
	ch := svc.narration(cmd.Context(), false)
	defer ch.Close()
	ctrl.Subscribe(ch)

	if err := ctrl.LoadTopic(set); err != nil {
		return err
	}
	if err := ctrl.EnterTier(tier); err != nil {
		return err
	}
	_, err = playTier(ctrl, cmd.InOrStdin(), out)
	return err
}

// playTier runs the active tier to completion on a line-based terminal.
// Closing the input abandons the tier.
func playTier(ctrl *engine.Controller, in io.Reader, out io.Writer) (engine.SessionState, error) {
	scanner := bufio.NewScanner(in)
	for {
		q, ok := ctrl.Current()
		if !ok {
			return ctrl.State(), nil
		}
		printQuestion(out, q)

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			if err := ctrl.AbandonTier(); err != nil {
				return ctrl.State(), err
			}
			return ctrl.State(), scanner.Err()
		}
		resp, err := parseResponse(q, scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "%v\n\n", err)
			continue
		}

		outcome, err := ctrl.SubmitAnswer(q.Position, resp)
		if errors.Is(err, engine.ErrPrecondition) {
			fmt.Fprintf(out, "%v\n\n", err)
			continue
		}
		if err != nil {
			return ctrl.State(), err
		}
		printOutcome(out, outcome)

		if outcome.TierComplete {
			st := outcome.State
			fmt.Fprintf(out, "── %s: %d/%d ──\n", st.ActiveTier, st.Score, st.TotalScorable)
			if st.Perfect() {
				fmt.Fprintln(out, "Excellent! A perfect score.")
			}
			return st, nil
		}
	}
}

func printQuestion(w io.Writer, q engine.Question) {
	fmt.Fprintf(w, "── %s %d/%d ──\n%s\n", q.Tier, q.Position+1, q.Count, q.Prompt)
	for _, c := range q.Choices {
		fmt.Fprintf(w, "  %s) %s\n", c.ID, c.Text)
	}
	for _, s := range q.Statements {
		fmt.Fprintf(w, "  %s) %s\n", s.ID, s.Statement)
	}
}

func printOutcome(w io.Writer, o engine.Outcome) {
	switch {
	case o.Correct:
		fmt.Fprintln(w, "\033[32m✓ Correct!\033[0m")
	case o.Tier == quiz.TierJudgment:
		fmt.Fprintf(w, "\033[31m✗ %d correct.\033[0m Answer: %s\n", o.Points, o.CorrectAnswer)
	default:
		fmt.Fprintf(w, "\033[31m✗ Wrong.\033[0m Answer: %s\n", o.CorrectAnswer)
	}
	if o.Explanation != "" {
		fmt.Fprintf(w, "Explanation: %s\n", o.Explanation)
	}
	fmt.Fprintln(w)
}

// parseResponse turns one input line into a response for q.
func parseResponse(q engine.Question, line string) (engine.Response, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return engine.Response{}, errors.New("(empty answer, try again)")
	}
	switch q.Tier {
	case quiz.TierMultipleChoice:
		id := strings.ToLower(line)
		if n, err := strconv.Atoi(id); err == nil && n >= 1 && n <= len(q.Choices) {
			id = q.Choices[n-1].ID
		}
		return engine.ChoiceResponse(id), nil
	case quiz.TierJudgment:
		truths, err := parseJudgment(q.Statements, line)
		if err != nil {
			return engine.Response{}, err
		}
		return engine.JudgmentResponse(truths), nil
	default:
		return engine.TextResponse(line), nil
	}
}

// parseJudgment accepts "TFTF", "t f t f" or "a=t b=f ...".
func parseJudgment(stmts []quiz.SubStatement, line string) (map[string]bool, error) {
	truths := make(map[string]bool, len(stmts))
	if strings.Contains(line, "=") {
		for _, f := range strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == ',' }) {
			id, val, ok := strings.Cut(f, "=")
			if !ok {
				return nil, fmt.Errorf("cannot read %q, use id=t or id=f", f)
			}
			b, err := truthValue(val)
			if err != nil {
				return nil, err
			}
			truths[strings.ToLower(strings.TrimSpace(id))] = b
		}
		return truths, nil
	}

	compact := strings.Join(strings.Fields(line), "")
	if len(compact) != len(stmts) {
		return nil, fmt.Errorf("need %d answers, got %d", len(stmts), len(compact))
	}
	for i, s := range stmts {
		b, err := truthValue(compact[i : i+1])
		if err != nil {
			return nil, err
		}
		truths[s.ID] = b
	}
	return truths, nil
}

func truthValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "true":
		return true, nil
	case "f", "false":
		return false, nil
	}
	return false, fmt.Errorf("%q is not T or F", s)
}
