package engine

import "errors"

// ErrPrecondition is the parent of every caller error the controller
// reports. A precondition error never mutates session state.
var ErrPrecondition = errors.New("precondition violated")

var (
	// ErrWrongPhase means the operation is not valid in the current phase.
	ErrWrongPhase = preconditionError("operation not valid in current phase")

	// ErrStaleSubmission means the submitted position is not the active one,
	// typically a repeated submission for an item already scored.
	ErrStaleSubmission = preconditionError("submission does not match the active item")

	// ErrIncompleteResponse means a judgment response is missing a
	// sub-statement.
	ErrIncompleteResponse = preconditionError("response does not cover every sub-statement")

	// ErrResponseKind means the response kind does not match the active tier.
	ErrResponseKind = preconditionError("response kind does not match tier")

	// ErrUnknownChoice means the choice or sub-statement id is not part of
	// the item.
	ErrUnknownChoice = preconditionError("unknown choice id")

	// ErrUnknownTier means the tier value is out of range.
	ErrUnknownTier = preconditionError("unknown tier")
)

// ErrSubjectLocked is returned by LoadTopic when the access gate reports
// the subject locked.
var ErrSubjectLocked = errors.New("subject is locked")

// ErrInvalidSet wraps a question set that fails its contract check.
var ErrInvalidSet = errors.New("invalid question set")

type precondition struct{ msg string }

func preconditionError(msg string) error { return &precondition{msg: msg} }

func (e *precondition) Error() string { return e.msg }
func (e *precondition) Unwrap() error { return ErrPrecondition }
