// Package questionset produces the question set for a subject and topic.
package questionset

import (
	"context"
	"errors"
	"fmt"

	"github.com/tkha/tierquiz/internal/llm"
	"github.com/tkha/tierquiz/internal/quiz"
)

// Provider fetches a complete question set for one topic.
type Provider interface {
	Fetch(ctx context.Context, subject, topic string) (*quiz.QuestionSet, error)
}

// ErrorKind classifies a failed fetch.
type ErrorKind string

const (
	// KindUnreachable means the backend could not be reached or refused.
	KindUnreachable ErrorKind = "unreachable"
	// KindMalformed means the backend answered with unusable output.
	KindMalformed ErrorKind = "malformed"
	// KindContract means the output parsed but broke the item-count or
	// reference rules.
	KindContract ErrorKind = "contract"
)

// GenerationError is the only error type Fetch returns.
type GenerationError struct {
	Kind    ErrorKind
	Subject string
	Topic   string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s/%q: %s: %v", e.Subject, e.Topic, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// classify maps a transport or contract error to its kind.
func classify(err error) ErrorKind {
	var (
		inv *llm.ErrInvalidResponse
		mt  *llm.ErrMaxTokensExceeded
		ce  *quiz.ContractError
	)
	switch {
	case errors.As(err, &ce):
		return KindContract
	case errors.As(err, &inv), errors.As(err, &mt):
		return KindMalformed
	default:
		return KindUnreachable
	}
}
