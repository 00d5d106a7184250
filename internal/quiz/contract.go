package quiz

import (
	"fmt"
	"strings"
)

// ContractError lists every way a question set breaks the fixed item
// contract. A set with any problem is rejected as a whole.
type ContractError struct {
	Problems []string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("question set violates contract: %s", strings.Join(e.Problems, "; "))
}

// ValidateSet checks item counts, required fields, id uniqueness and answer
// references. Returns nil or a *ContractError.
func ValidateSet(s *QuestionSet) error {
	if s == nil {
		return &ContractError{Problems: []string{"question set is nil"}}
	}

	var p problems
	if strings.TrimSpace(s.Topic) == "" {
		p.add("topic is empty")
	}

	if len(s.MCQ) != MCQCount {
		p.add("multiple-choice tier has %d items, want %d", len(s.MCQ), MCQCount)
	}
	ids := make(map[string]bool)
	for i, item := range s.MCQ {
		p.checkID("multiple-choice", i, item.ID, ids)
		if blank(item.Prompt) {
			p.add("multiple-choice item %d has an empty prompt", i+1)
		}
		if len(item.Choices) < 2 {
			p.add("multiple-choice item %d has %d choices, want at least 2", i+1, len(item.Choices))
		}
		choiceIDs := make(map[string]bool, len(item.Choices))
		for _, c := range item.Choices {
			if blank(c.ID) {
				p.add("multiple-choice item %d has a choice without id", i+1)
				continue
			}
			if choiceIDs[c.ID] {
				p.add("multiple-choice item %d repeats choice id %q", i+1, c.ID)
			}
			choiceIDs[c.ID] = true
		}
		if blank(item.CorrectChoiceID) {
			p.add("multiple-choice item %d has no correct choice", i+1)
		} else if !choiceIDs[item.CorrectChoiceID] {
			p.add("multiple-choice item %d references unknown choice %q", i+1, item.CorrectChoiceID)
		}
	}

	if len(s.Judgment) != JudgmentCount {
		p.add("judgment tier has %d items, want %d", len(s.Judgment), JudgmentCount)
	}
	ids = make(map[string]bool)
	for i, item := range s.Judgment {
		p.checkID("judgment", i, item.ID, ids)
		if blank(item.Context) {
			p.add("judgment item %d has an empty context", i+1)
		}
		if len(item.SubStatements) != SubStatements {
			p.add("judgment item %d has %d sub-statements, want %d", i+1, len(item.SubStatements), SubStatements)
		}
		subIDs := make(map[string]bool, len(item.SubStatements))
		for j, sub := range item.SubStatements {
			if blank(sub.ID) {
				p.add("judgment item %d sub-statement %d has no id", i+1, j+1)
			} else if subIDs[sub.ID] {
				p.add("judgment item %d repeats sub-statement id %q", i+1, sub.ID)
			}
			subIDs[sub.ID] = true
			if blank(sub.Statement) {
				p.add("judgment item %d sub-statement %d is empty", i+1, j+1)
			}
		}
	}

	if len(s.ShortAnswer) != ShortAnswerCount {
		p.add("short-answer tier has %d items, want %d", len(s.ShortAnswer), ShortAnswerCount)
	}
	ids = make(map[string]bool)
	for i, item := range s.ShortAnswer {
		p.checkID("short-answer", i, item.ID, ids)
		if blank(item.Prompt) {
			p.add("short-answer item %d has an empty prompt", i+1)
		}
		if blank(item.CorrectAnswer) {
			p.add("short-answer item %d has no correct answer", i+1)
		}
	}

	if len(p) > 0 {
		return &ContractError{Problems: p}
	}
	return nil
}

type problems []string

func (p *problems) add(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

func (p *problems) checkID(tier string, i int, id string, seen map[string]bool) {
	if blank(id) {
		p.add("%s item %d has no id", tier, i+1)
		return
	}
	if seen[id] {
		p.add("%s item %d repeats id %q", tier, i+1, id)
	}
	seen[id] = true
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
