// Package quiztest builds contract-conforming question sets for tests.
package quiztest

import (
	"fmt"

	"github.com/tkha/tierquiz/internal/quiz"
)

// Set returns a valid question set. Every MCQ answer is choice "a", every
// sub-statement alternates true/false starting with true, and short answer i
// (zero-based) is the decimal "i,5".
func Set(subject, topic string) *quiz.QuestionSet {
	s := &quiz.QuestionSet{Subject: subject, Topic: topic}
	for i := range quiz.MCQCount {
		s.MCQ = append(s.MCQ, quiz.MCQItem{
			ID:     fmt.Sprintf("%d", i+1),
			Prompt: fmt.Sprintf("What is item %d?", i+1),
			Choices: []quiz.Choice{
				{ID: "a", Text: "right"},
				{ID: "b", Text: "wrong"},
				{ID: "c", Text: "also wrong"},
				{ID: "d", Text: "still wrong"},
			},
			CorrectChoiceID: "a",
			Explanation:     "a is right",
		})
	}
	for i := range quiz.JudgmentCount {
		item := quiz.JudgmentItem{
			ID:          fmt.Sprintf("%d", i+1),
			Context:     fmt.Sprintf("Context %d", i+1),
			Explanation: "see context",
		}
		for j := range quiz.SubStatements {
			item.SubStatements = append(item.SubStatements, quiz.SubStatement{
				ID:           fmt.Sprintf("%c", 'a'+j),
				Statement:    fmt.Sprintf("Statement %d.%d", i+1, j+1),
				CorrectTruth: j%2 == 0,
			})
		}
		s.Judgment = append(s.Judgment, item)
	}
	for i := range quiz.ShortAnswerCount {
		s.ShortAnswer = append(s.ShortAnswer, quiz.ShortAnswerItem{
			ID:            fmt.Sprintf("%d", i+1),
			Prompt:        fmt.Sprintf("Compute value %d", i+1),
			CorrectAnswer: fmt.Sprintf("%d,5", i),
			Explanation:   "arithmetic",
		})
	}
	return s
}

// Truths returns the correct responses for a judgment item.
func Truths(item quiz.JudgmentItem) map[string]bool {
	m := make(map[string]bool, len(item.SubStatements))
	for _, sub := range item.SubStatements {
		m[sub.ID] = sub.CorrectTruth
	}
	return m
}

// Inverted returns the wrong response for every sub-statement.
func Inverted(item quiz.JudgmentItem) map[string]bool {
	m := make(map[string]bool, len(item.SubStatements))
	for _, sub := range item.SubStatements {
		m[sub.ID] = !sub.CorrectTruth
	}
	return m
}
