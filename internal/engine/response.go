package engine

import "github.com/tkha/tierquiz/internal/quiz"

// Response is a learner's answer to the active item. Build one with
// ChoiceResponse, JudgmentResponse or TextResponse.
type Response struct {
	kind     quiz.Tier
	choiceID string
	truths   map[string]bool
	text     string
}

// ChoiceResponse answers a multiple-choice item.
func ChoiceResponse(choiceID string) Response {
	return Response{kind: quiz.TierMultipleChoice, choiceID: choiceID}
}

// JudgmentResponse answers a judgment item, keyed by sub-statement id.
func JudgmentResponse(truths map[string]bool) Response {
	cp := make(map[string]bool, len(truths))
	for k, v := range truths {
		cp[k] = v
	}
	return Response{kind: quiz.TierJudgment, truths: cp}
}

// TextResponse answers a short-answer item.
func TextResponse(text string) Response {
	return Response{kind: quiz.TierShortAnswer, text: text}
}

// Kind returns the tier this response is shaped for.
func (r Response) Kind() quiz.Tier { return r.kind }

// Outcome is the scored result of one submission.
type Outcome struct {
	Tier     quiz.Tier
	Position int
	ItemID   string
	Correct  bool
	Points   int

	// PerStatement is set for judgment items only.
	PerStatement map[string]bool

	// CorrectChoiceID is set for multiple-choice items only.
	CorrectChoiceID string

	// CorrectAnswer is the display text of the reference answer.
	CorrectAnswer string
	Explanation   string

	// TierComplete is true when this submission scored the tier's last item.
	TierComplete bool
	State        SessionState
}
