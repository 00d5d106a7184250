package engine

import (
	"strings"

	"github.com/tkha/tierquiz/internal/quiz"
	"github.com/tkha/tierquiz/internal/textclean"
)

// Question is a display-ready view of the active item. All text is
// sanitized.
type Question struct {
	Tier     quiz.Tier
	Position int
	Count    int
	ItemID   string

	// Prompt is the question text, or the context of a judgment item.
	Prompt     string
	Choices    []quiz.Choice
	Statements []quiz.SubStatement
}

// SpeechText is the text narrated when the question becomes active.
func (q Question) SpeechText() string {
	return q.Prompt
}

func buildQuestion(set *quiz.QuestionSet, tier quiz.Tier, pos int) Question {
	q := Question{Tier: tier, Position: pos, Count: set.ItemCount(tier)}
	switch tier {
	case quiz.TierMultipleChoice:
		item := set.MCQ[pos]
		q.ItemID = item.ID
		q.Prompt = textclean.Sanitize(item.Prompt)
		for _, c := range item.Choices {
			q.Choices = append(q.Choices, quiz.Choice{ID: c.ID, Text: textclean.Sanitize(c.Text)})
		}
	case quiz.TierJudgment:
		item := set.Judgment[pos]
		q.ItemID = item.ID
		q.Prompt = textclean.Sanitize(item.Context)
		for _, sub := range item.SubStatements {
			// CorrectTruth stays hidden from the view.
			q.Statements = append(q.Statements, quiz.SubStatement{ID: sub.ID, Statement: textclean.Sanitize(sub.Statement)})
		}
	case quiz.TierShortAnswer:
		item := set.ShortAnswer[pos]
		q.ItemID = item.ID
		q.Prompt = textclean.Sanitize(item.Prompt)
	}
	return q
}

// reference returns the display form of an item's correct answer.
func reference(set *quiz.QuestionSet, tier quiz.Tier, pos int) (answer, explanation string) {
	switch tier {
	case quiz.TierMultipleChoice:
		item := set.MCQ[pos]
		answer = item.CorrectChoiceID
		if c, ok := item.Choice(item.CorrectChoiceID); ok {
			answer = item.CorrectChoiceID + ". " + textclean.Sanitize(c.Text)
		}
		return answer, textclean.Sanitize(item.Explanation)
	case quiz.TierJudgment:
		item := set.Judgment[pos]
		parts := make([]string, 0, len(item.SubStatements))
		for _, sub := range item.SubStatements {
			v := "F"
			if sub.CorrectTruth {
				v = "T"
			}
			parts = append(parts, sub.ID+"="+v)
		}
		return strings.Join(parts, " "), textclean.Sanitize(item.Explanation)
	case quiz.TierShortAnswer:
		item := set.ShortAnswer[pos]
		return strings.TrimSpace(item.CorrectAnswer), textclean.Sanitize(item.Explanation)
	}
	return "", ""
}
