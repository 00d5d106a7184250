// Package engine drives a quiz session through the tiers of one topic.
package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tkha/tierquiz/internal/logger"
	"github.com/tkha/tierquiz/internal/quiz"
)

// Gate reports whether a subject may be played.
type Gate interface {
	IsUnlocked(subject string) bool
}

// SessionState is a snapshot of the controller. It is a value; changing it
// has no effect on the controller.
type SessionState struct {
	SessionID     string
	Phase         Phase
	Subject       string
	Topic         string
	ActiveTier    quiz.Tier
	HasTier       bool
	Position      int
	Score         int
	TotalScorable int
	Completed     bool
}

// Perfect reports a full score on a completed tier.
func (s SessionState) Perfect() bool {
	return s.Completed && s.Score == s.TotalScorable && s.TotalScorable > 0
}

// Controller owns the session state for one learner. All methods are safe
// to call from multiple goroutines; calls are serialised so a submission
// never interleaves with another transition.
type Controller struct {
	mu        sync.Mutex
	gate      Gate
	log       *logger.Logger
	listeners []Listener

	sessionID string
	set       *quiz.QuestionSet
	phase     Phase
	tier      quiz.Tier
	position  int
	score     Score
}

// NewController creates an idle controller. A nil gate unlocks every
// subject; a nil logger discards output.
func NewController(gate Gate, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.NewNop()
	}
	return &Controller{gate: gate, log: log.With("component", "engine")}
}

// Subscribe registers a listener for question events.
func (c *Controller) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// LoadTopic installs a new question set and moves to tier selection,
// discarding any prior session. Sets that fail the contract check and
// locked subjects are refused without changing state.
func (c *Controller) LoadTopic(set *quiz.QuestionSet) error {
	if err := quiz.ValidateSet(set); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSet, err)
	}
	if c.gate != nil && !c.gate.IsUnlocked(set.Subject) {
		return fmt.Errorf("%w: %s", ErrSubjectLocked, set.Subject)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
	c.set = set
	c.sessionID = uuid.New().String()
	c.phase = PhaseTierSelect
	c.log.Info("topic loaded", "session_id", c.sessionID, "subject", set.Subject, "topic", set.Topic)
	return nil
}

// EnterTier starts a traversal of tier from its first item.
func (c *Controller) EnterTier(tier quiz.Tier) error {
	c.mu.Lock()
	if c.phase != PhaseTierSelect {
		phase := c.phase
		c.mu.Unlock()
		return fmt.Errorf("%w: enter tier in %s", ErrWrongPhase, phase)
	}
	if tier < quiz.TierMultipleChoice || tier > quiz.TierShortAnswer {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownTier, int(tier))
	}
	c.tier = tier
	c.position = 0
	c.score = NewScore(c.set.TotalScorable(tier))
	c.phase = PhaseInTier
	ev := c.activatedLocked()
	listeners := c.listeners
	c.log.Debug("tier entered", "session_id", c.sessionID, "tier", tier.Key(), "total", c.score.Total())
	c.mu.Unlock()

	notify(listeners, ev)
	return nil
}

// SubmitAnswer scores resp against the item at position and advances. The
// position must be the active one; a second submission for the same
// position is rejected with ErrStaleSubmission. Malformed responses return
// a precondition error and leave the state untouched.
func (c *Controller) SubmitAnswer(position int, resp Response) (Outcome, error) {
	c.mu.Lock()
	if c.phase != PhaseInTier {
		phase := c.phase
		c.mu.Unlock()
		return Outcome{}, fmt.Errorf("%w: submit in %s", ErrWrongPhase, phase)
	}
	if position != c.position {
		active := c.position
		c.mu.Unlock()
		return Outcome{}, fmt.Errorf("%w: got position %d, active is %d", ErrStaleSubmission, position, active)
	}

	out, err := c.scoreLocked(resp)
	if err != nil {
		c.mu.Unlock()
		return Outcome{}, err
	}

	// Points come from validators and are never negative.
	_ = c.score.Record(out.Points)
	out.Tier = c.tier
	out.Position = c.position
	out.CorrectAnswer, out.Explanation = reference(c.set, c.tier, c.position)

	var ev *QuestionActivated
	if c.position+1 < c.set.ItemCount(c.tier) {
		c.position++
		ev = c.activatedLocked()
	} else {
		c.score.markComplete()
		c.phase = PhaseTierComplete
		out.TierComplete = true
		c.log.Info("tier complete", "session_id", c.sessionID, "tier", c.tier.Key(),
			"score", c.score.Points(), "total", c.score.Total())
	}
	out.State = c.stateLocked()
	listeners := c.listeners
	c.mu.Unlock()

	if ev != nil {
		notify(listeners, ev)
	}
	return out, nil
}

// ExitTier dismisses a finished tier and returns to tier selection. The
// score snapshot is discarded; read State first.
func (c *Controller) ExitTier() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseTierComplete {
		return fmt.Errorf("%w: exit tier in %s", ErrWrongPhase, c.phase)
	}
	c.phase = PhaseTierSelect
	c.position = 0
	c.score = Score{}
	return nil
}

// AbandonTier leaves a tier before its last item, discarding progress.
func (c *Controller) AbandonTier() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseInTier {
		return fmt.Errorf("%w: abandon tier in %s", ErrWrongPhase, c.phase)
	}
	c.log.Debug("tier abandoned", "session_id", c.sessionID, "tier", c.tier.Key(), "position", c.position)
	c.phase = PhaseTierSelect
	c.position = 0
	c.score = Score{}
	return nil
}

// ResetTopic drops the topic and returns to idle from any phase.
func (c *Controller) ResetTopic() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
}

// State returns a snapshot of the session.
func (c *Controller) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Current returns the active question, if a tier is in progress.
func (c *Controller) Current() (Question, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseInTier {
		return Question{}, false
	}
	return buildQuestion(c.set, c.tier, c.position), true
}

// Set returns the loaded question set, or nil when idle.
func (c *Controller) Set() *quiz.QuestionSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set
}

func (c *Controller) clear() {
	c.set = nil
	c.sessionID = ""
	c.phase = PhaseIdle
	c.tier = 0
	c.position = 0
	c.score = Score{}
}

func (c *Controller) stateLocked() SessionState {
	st := SessionState{SessionID: c.sessionID, Phase: c.phase}
	if c.set != nil {
		st.Subject = c.set.Subject
		st.Topic = c.set.Topic
	}
	if c.phase == PhaseInTier || c.phase == PhaseTierComplete {
		st.ActiveTier = c.tier
		st.HasTier = true
		st.Position = c.position
		st.Score = c.score.Points()
		st.TotalScorable = c.score.Total()
		st.Completed = c.score.IsComplete()
	}
	return st
}

func (c *Controller) activatedLocked() *QuestionActivated {
	return &QuestionActivated{
		SessionID: c.sessionID,
		Question:  buildQuestion(c.set, c.tier, c.position),
	}
}

// scoreLocked validates the response shape and runs the matching checker.
func (c *Controller) scoreLocked(resp Response) (Outcome, error) {
	if resp.kind != c.tier {
		return Outcome{}, fmt.Errorf("%w: %s response in %s tier", ErrResponseKind, resp.kind.Key(), c.tier.Key())
	}

	switch c.tier {
	case quiz.TierMultipleChoice:
		item := c.set.MCQ[c.position]
		if _, ok := item.Choice(resp.choiceID); !ok {
			return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownChoice, resp.choiceID)
		}
		out := Outcome{
			ItemID:          item.ID,
			Correct:         quiz.CheckMCQ(item, resp.choiceID),
			CorrectChoiceID: item.CorrectChoiceID,
		}
		if out.Correct {
			out.Points = 1
		}
		return out, nil

	case quiz.TierJudgment:
		item := c.set.Judgment[c.position]
		known := make(map[string]bool, len(item.SubStatements))
		for _, sub := range item.SubStatements {
			known[sub.ID] = true
			if _, ok := resp.truths[sub.ID]; !ok {
				return Outcome{}, fmt.Errorf("%w: missing %q", ErrIncompleteResponse, sub.ID)
			}
		}
		for id := range resp.truths {
			if !known[id] {
				return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownChoice, id)
			}
		}
		res := quiz.CheckJudgment(item, resp.truths)
		return Outcome{
			ItemID:       item.ID,
			Correct:      res.CorrectCount == len(item.SubStatements),
			Points:       res.CorrectCount,
			PerStatement: res.PerStatement,
		}, nil

	case quiz.TierShortAnswer:
		item := c.set.ShortAnswer[c.position]
		out := Outcome{ItemID: item.ID, Correct: quiz.CheckShortAnswer(item, resp.text)}
		if out.Correct {
			out.Points = 1
		}
		return out, nil
	}
	return Outcome{}, fmt.Errorf("%w: %d", ErrUnknownTier, int(c.tier))
}

func notify(listeners []Listener, ev *QuestionActivated) {
	for _, l := range listeners {
		l.OnQuestionActivated(*ev)
	}
}
