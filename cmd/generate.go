package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tkha/tierquiz/internal/quiz"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and print a question set (no session)",
	Long: `Generate a question set for a subject and topic, check it against the
item-count and reference rules, and print it.

This is a developer tool for judging question quality. Provider calls are
still recorded in the event log.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("subject", "", "Subject id (required)")
	generateCmd.Flags().String("topic", "", "Topic text (required)")
	generateCmd.Flags().Bool("json", false, "Print the set as JSON")
	_ = generateCmd.MarkFlagRequired("subject")
	_ = generateCmd.MarkFlagRequired("topic")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	subject, _ := cmd.Flags().GetString("subject")
	topic, _ := cmd.Flags().GetString("topic")
	asJSON, _ := cmd.Flags().GetBool("json")

	svc, err := newServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	if _, ok := svc.cfg.Subject(subject); !ok {
		return fmt.Errorf("unknown subject %q (see `tierquiz subjects`)", subject)
	}
	gen, err := svc.generator(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Generating %s / %q...\n", subject, topic)
	set, err := gen.Fetch(cmd.Context(), subject, topic)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(set)
	}
	printSet(out, set)
	return nil
}

// printSet writes a readable listing of every tier with its answers.
func printSet(w io.Writer, set *quiz.QuestionSet) {
	fmt.Fprintf(w, "Subject: %s\nTopic:   %s\n", set.Subject, set.Topic)

	section(w, quiz.TierMultipleChoice)
	for i, item := range set.MCQ {
		fmt.Fprintf(w, "%2d. %s\n", i+1, item.Prompt)
		for _, c := range item.Choices {
			mark := " "
			if c.ID == item.CorrectChoiceID {
				mark = "*"
			}
			fmt.Fprintf(w, "   %s %s) %s\n", mark, c.ID, c.Text)
		}
		explain(w, item.Explanation)
	}

	section(w, quiz.TierJudgment)
	for i, item := range set.Judgment {
		fmt.Fprintf(w, "%2d. %s\n", i+1, item.Context)
		for _, sub := range item.SubStatements {
			fmt.Fprintf(w, "     %s) [%s] %s\n", sub.ID, truthLetter(sub.CorrectTruth), sub.Statement)
		}
		explain(w, item.Explanation)
	}

	section(w, quiz.TierShortAnswer)
	for i, item := range set.ShortAnswer {
		fmt.Fprintf(w, "%2d. %s\n     = %s\n", i+1, item.Prompt, item.CorrectAnswer)
		explain(w, item.Explanation)
	}
}

func section(w io.Writer, t quiz.Tier) {
	title := fmt.Sprintf("── %s (%s) ", t, t.Key())
	fmt.Fprintf(w, "\n%s%s\n", title, strings.Repeat("─", max(0, 60-len([]rune(title)))))
}

func explain(w io.Writer, s string) {
	if s != "" {
		fmt.Fprintf(w, "     Explanation: %s\n", s)
	}
}

func truthLetter(b bool) string {
	if b {
		return "T"
	}
	return "F"
}
