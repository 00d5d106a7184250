package quiz

// Tier is one of the three stages of a topic's question set.
type Tier int

const (
	TierMultipleChoice Tier = iota // 12 multiple-choice items
	TierJudgment                   // 4 true/false clusters of 4 sub-statements
	TierShortAnswer                // 6 short numeric or phrase answers
)

// AllTiers lists the tiers in presentation order.
var AllTiers = []Tier{TierMultipleChoice, TierJudgment, TierShortAnswer}

// String returns the tier label shown to the learner.
func (t Tier) String() string {
	switch t {
	case TierMultipleChoice:
		return "Warm-up"
	case TierJudgment:
		return "Challenge"
	case TierShortAnswer:
		return "Finish Line"
	default:
		return "Unknown"
	}
}

// Key returns the short identifier used on the command line.
func (t Tier) Key() string {
	switch t {
	case TierMultipleChoice:
		return "mcq"
	case TierJudgment:
		return "judgment"
	case TierShortAnswer:
		return "short"
	default:
		return ""
	}
}

// ParseTier resolves a command-line tier key.
func ParseTier(s string) (Tier, bool) {
	for _, t := range AllTiers {
		if t.Key() == s {
			return t, true
		}
	}
	return 0, false
}

// Item counts every question set must carry.
const (
	MCQCount         = 12
	JudgmentCount    = 4
	SubStatements    = 4
	ShortAnswerCount = 6
)

// QuestionSet is the full generated content for one topic. It is never
// modified after the content provider returns it.
type QuestionSet struct {
	Subject     string
	Topic       string
	MCQ         []MCQItem
	Judgment    []JudgmentItem
	ShortAnswer []ShortAnswerItem
}

// ItemCount returns the number of items in the given tier.
func (s *QuestionSet) ItemCount(t Tier) int {
	switch t {
	case TierMultipleChoice:
		return len(s.MCQ)
	case TierJudgment:
		return len(s.Judgment)
	case TierShortAnswer:
		return len(s.ShortAnswer)
	default:
		return 0
	}
}

// TotalScorable returns the maximum score for a tier. Judgment items score
// one point per sub-statement.
func (s *QuestionSet) TotalScorable(t Tier) int {
	if t == TierJudgment {
		total := 0
		for _, item := range s.Judgment {
			total += len(item.SubStatements)
		}
		return total
	}
	return s.ItemCount(t)
}

// Choice is one option of a multiple-choice item.
type Choice struct {
	ID   string
	Text string
}

// MCQItem is a multiple-choice question.
type MCQItem struct {
	ID              string
	Prompt          string
	Choices         []Choice
	CorrectChoiceID string
	Explanation     string
}

// Choice returns the choice with the given id.
func (m MCQItem) Choice(id string) (Choice, bool) {
	for _, c := range m.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

// SubStatement is one independently judged clause of a judgment item.
type SubStatement struct {
	ID           string
	Statement    string
	CorrectTruth bool
}

// JudgmentItem is a context followed by true/false sub-statements.
type JudgmentItem struct {
	ID            string
	Context       string
	SubStatements []SubStatement
	Explanation   string
}

// ShortAnswerItem expects a single number or short phrase.
type ShortAnswerItem struct {
	ID            string
	Prompt        string
	CorrectAnswer string
	Explanation   string
}
