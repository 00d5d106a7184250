package questionset

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/tkha/tierquiz/internal/llm"
	"github.com/tkha/tierquiz/internal/quiz"
	"github.com/tkha/tierquiz/internal/quiz/quiztest"
)

// wireJSON renders set in the model's response format, with option ids
// upper-cased the way models usually write them.
func wireJSON(t *testing.T, set *quiz.QuestionSet) json.RawMessage {
	t.Helper()
	var mcq, tf, short []map[string]any
	for i, m := range set.MCQ {
		var opts []map[string]any
		for _, c := range m.Choices {
			opts = append(opts, map[string]any{"id": strings.ToUpper(c.ID), "text": c.Text})
		}
		mcq = append(mcq, map[string]any{
			"id": i + 1, "question": m.Prompt, "options": opts,
			"correct_answer": strings.ToUpper(m.CorrectChoiceID), "explanation": m.Explanation,
		})
	}
	for i, j := range set.Judgment {
		var stmts []map[string]any
		for k, s := range j.SubStatements {
			stmts = append(stmts, map[string]any{"id": k + 1, "statement": s.Statement, "correct": s.CorrectTruth})
		}
		tf = append(tf, map[string]any{
			"id": i + 1, "context": j.Context, "statements": stmts, "explanation": j.Explanation,
		})
	}
	for i, s := range set.ShortAnswer {
		short = append(short, map[string]any{
			"id": i + 1, "question": s.Prompt, "correct_answer": s.CorrectAnswer, "explanation": s.Explanation,
		})
	}
	b, err := json.Marshal(map[string]any{
		"topic": set.Topic, "multiple_choice": mcq, "true_false": tf, "short_answer": short,
	})
	if err != nil {
		t.Fatalf("marshal wire set: %v", err)
	}
	return b
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Subjects = map[string]string{"math": "Mathematics"}
	return cfg
}

func TestFetch_ValidSet(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: wireJSON(t, quiztest.Set("math", "Limits")),
	})
	gen := New(mock, testConfig(), nil)

	set, err := gen.Fetch(context.Background(), "math", "limits")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Subject != "math" || set.Topic != "Limits" {
		t.Errorf("subject/topic = %q/%q", set.Subject, set.Topic)
	}
	if len(set.MCQ) != 12 || len(set.Judgment) != 4 || len(set.ShortAnswer) != 6 {
		t.Fatalf("counts = %d/%d/%d", len(set.MCQ), len(set.Judgment), len(set.ShortAnswer))
	}
	if set.MCQ[0].CorrectChoiceID != "a" || set.MCQ[0].Choices[3].ID != "d" {
		t.Errorf("option ids not normalised: %+v", set.MCQ[0])
	}
	if got := set.Judgment[2].SubStatements[1]; got.ID != "b" || got.CorrectTruth {
		t.Errorf("sub-statement = %+v, want id b false", got)
	}
	if set.ShortAnswer[3].CorrectAnswer != "3,5" {
		t.Errorf("short answer = %q", set.ShortAnswer[3].CorrectAnswer)
	}
}

func TestFetch_Request(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: wireJSON(t, quiztest.Set("math", "limits"))},
		llm.MockResponse{Content: wireJSON(t, quiztest.Set("math", "limits"))},
	)
	cfg := testConfig()
	cfg.Language = "Vietnamese"
	gen := New(mock, cfg, nil)

	for range 2 {
		if _, err := gen.Fetch(context.Background(), "math", "limits"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	req := mock.Calls[0]
	if req.Schema != Schema || req.Temperature != 1.0 || req.MaxTokens != 8192 {
		t.Errorf("request = schema %v temp %v max %d", req.Schema, req.Temperature, req.MaxTokens)
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Mathematics", `"limits"`, "Vietnamese", "Version: "} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
	if msg == mock.Calls[1].Messages[0].Content {
		t.Error("repeated topic produced an identical prompt")
	}
}

func TestFetch_FencedResponse(t *testing.T) {
	fenced := "```json\n" + string(wireJSON(t, quiztest.Set("math", "limits"))) + "\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(fenced)})

	if _, err := New(mock, testConfig(), nil).Fetch(context.Background(), "math", "limits"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetch_BlankTopicFallsBack(t *testing.T) {
	set := quiztest.Set("math", "")
	mock := llm.NewMockProvider(llm.MockResponse{Content: wireJSON(t, set)})

	got, err := New(mock, testConfig(), nil).Fetch(context.Background(), "math", "  series ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Topic != "series" {
		t.Errorf("topic = %q, want series", got.Topic)
	}
}

func TestFetch_ErrorKinds(t *testing.T) {
	badRef := quiztest.Set("math", "limits")
	badRef.MCQ[5].CorrectChoiceID = "e"

	shortTier := quiztest.Set("math", "limits")
	shortTier.ShortAnswer = shortTier.ShortAnswer[:5]

	tests := []struct {
		name string
		resp []llm.MockResponse
		want ErrorKind
	}{
		{"unreachable", nil, KindUnreachable},
		{"rate limited", []llm.MockResponse{{Err: &llm.ErrRateLimit{}}}, KindUnreachable},
		{"truncated", []llm.MockResponse{{Err: &llm.ErrMaxTokensExceeded{}}}, KindMalformed},
		{"not json", []llm.MockResponse{{Content: json.RawMessage(`{oops`)}}, KindMalformed},
		{"schema count", []llm.MockResponse{{Content: wireJSON(t, shortTier)}}, KindMalformed},
		{"unknown correct option", []llm.MockResponse{{Content: wireJSON(t, badRef)}}, KindContract},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := New(llm.NewMockProvider(tt.resp...), testConfig(), nil)
			_, err := gen.Fetch(context.Background(), "math", "limits")

			var ge *GenerationError
			if !errors.As(err, &ge) {
				t.Fatalf("expected *GenerationError, got %T (%v)", err, err)
			}
			if ge.Kind != tt.want {
				t.Errorf("kind = %s, want %s (%v)", ge.Kind, tt.want, err)
			}
			if ge.Subject != "math" || ge.Topic != "limits" {
				t.Errorf("error context = %q/%q", ge.Subject, ge.Topic)
			}
		})
	}
}

func TestFetch_ContractErrorUnwraps(t *testing.T) {
	set := quiztest.Set("math", "limits")
	set.MCQ[0].CorrectChoiceID = "z"
	mock := llm.NewMockProvider(llm.MockResponse{Content: wireJSON(t, set)})

	_, err := New(mock, testConfig(), nil).Fetch(context.Background(), "math", "limits")
	var ce *quiz.ContractError
	if !errors.As(err, &ce) {
		t.Fatalf("expected wrapped *quiz.ContractError, got %v", err)
	}
}
