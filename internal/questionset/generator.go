package questionset

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tkha/tierquiz/internal/llm"
	"github.com/tkha/tierquiz/internal/logger"
	"github.com/tkha/tierquiz/internal/quiz"
)

// Config controls the LLM-backed generator.
type Config struct {
	// Subjects maps subject ids to the names used in the prompt. Unknown
	// ids are sent as-is.
	Subjects map[string]string

	Language    string
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns settings that fit a full set in one response.
func DefaultConfig() Config {
	return Config{
		Language:    "English",
		MaxTokens:   8192,
		Temperature: 1.0,
	}
}

// Generator implements Provider with a single structured LLM call.
type Generator struct {
	provider llm.Provider
	config   Config
	log      *logger.Logger

	// version returns the per-request tag that defeats response caching.
	version func() string
}

// New creates a Generator.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Generator{
		provider: provider,
		config:   cfg,
		log:      log.With("component", "questionset"),
		version:  func() string { return uuid.NewString()[:8] },
	}
}

// Fetch generates, decodes and validates a set. Every failure is a
// *GenerationError.
func (g *Generator) Fetch(ctx context.Context, subject, topic string) (*quiz.QuestionSet, error) {
	fail := func(kind ErrorKind, err error) error {
		g.log.Warn("generation failed", "subject", subject, "topic", topic, "kind", kind, "error", err)
		return &GenerationError{Kind: kind, Subject: subject, Topic: topic, Err: err}
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionSet)
	req := llm.UserPrompt(systemPrompt, buildUserMessage(g.subjectName(subject), topic, g.config.Language, g.version()))
	req.Schema = Schema
	req.MaxTokens = g.config.MaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fail(classify(err), err)
	}

	var raw setOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fail(KindMalformed, fmt.Errorf("decode question set: %w", err))
	}

	set := raw.toSet(subject, topic)
	if err := quiz.ValidateSet(set); err != nil {
		return nil, fail(KindContract, err)
	}

	g.log.Info("question set generated", "subject", subject, "topic", set.Topic,
		"model", resp.Model, "output_tokens", resp.Usage.OutputTokens)
	return set, nil
}

func (g *Generator) subjectName(id string) string {
	if name, ok := g.config.Subjects[id]; ok && name != "" {
		return name
	}
	return id
}

// setOutput is the raw model response.
type setOutput struct {
	Topic          string           `json:"topic"`
	MultipleChoice []mcqOutput      `json:"multiple_choice"`
	TrueFalse      []judgmentOutput `json:"true_false"`
	ShortAnswer    []shortOutput    `json:"short_answer"`
}

type mcqOutput struct {
	ID       json.Number `json:"id"`
	Question string      `json:"question"`
	Options  []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"options"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

type judgmentOutput struct {
	ID         json.Number `json:"id"`
	Context    string      `json:"context"`
	Statements []struct {
		Statement string `json:"statement"`
		Correct   bool   `json:"correct"`
	} `json:"statements"`
	Explanation string `json:"explanation"`
}

type shortOutput struct {
	ID            json.Number `json:"id"`
	Question      string      `json:"question"`
	CorrectAnswer string      `json:"correct_answer"`
	Explanation   string      `json:"explanation"`
}

// subIDs names sub-statements by position, matching the a-d toggles the
// learner sees.
var subIDs = []string{"a", "b", "c", "d", "e", "f", "g", "h"}

// optionID lower-cases option letters so "B" and "b" name the same choice.
func optionID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (o setOutput) toSet(subject, requested string) *quiz.QuestionSet {
	set := &quiz.QuestionSet{Subject: subject, Topic: strings.TrimSpace(o.Topic)}
	if set.Topic == "" {
		set.Topic = strings.TrimSpace(requested)
	}

	for _, m := range o.MultipleChoice {
		item := quiz.MCQItem{
			ID:              m.ID.String(),
			Prompt:          m.Question,
			CorrectChoiceID: optionID(m.CorrectAnswer),
			Explanation:     m.Explanation,
		}
		for _, opt := range m.Options {
			item.Choices = append(item.Choices, quiz.Choice{ID: optionID(opt.ID), Text: opt.Text})
		}
		set.MCQ = append(set.MCQ, item)
	}

	for _, j := range o.TrueFalse {
		item := quiz.JudgmentItem{ID: j.ID.String(), Context: j.Context, Explanation: j.Explanation}
		for i, st := range j.Statements {
			id := ""
			if i < len(subIDs) {
				id = subIDs[i]
			}
			item.SubStatements = append(item.SubStatements, quiz.SubStatement{
				ID: id, Statement: st.Statement, CorrectTruth: st.Correct,
			})
		}
		set.Judgment = append(set.Judgment, item)
	}

	for _, s := range o.ShortAnswer {
		set.ShortAnswer = append(set.ShortAnswer, quiz.ShortAnswerItem{
			ID:            s.ID.String(),
			Prompt:        s.Question,
			CorrectAnswer: strings.TrimSpace(s.CorrectAnswer),
			Explanation:   s.Explanation,
		})
	}
	return set
}
