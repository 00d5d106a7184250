package engine

// QuestionActivated is emitted when an item becomes active: on tier entry
// and after each advance. It is never emitted for answers.
type QuestionActivated struct {
	SessionID string
	Question  Question
}

// Listener receives controller events. Handlers run on the caller's
// goroutine after the controller lock is released and must not block.
type Listener interface {
	OnQuestionActivated(QuestionActivated)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(QuestionActivated)

func (f ListenerFunc) OnQuestionActivated(e QuestionActivated) { f(e) }
