package questionset

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tkha/tierquiz/internal/logger"
	"github.com/tkha/tierquiz/internal/quiz"
)

// ErrSuperseded is returned to a caller whose fetch finished after a newer
// Load started. The result is stale and must be dropped.
var ErrSuperseded = errors.New("questionset: superseded by a newer topic")

// Loader fronts a Provider for the interactive session. The latest Load
// wins, and identical in-flight loads share one provider call.
type Loader struct {
	provider Provider
	log      *logger.Logger
	timeout  time.Duration

	generation atomic.Uint64
	group      singleflight.Group
}

// NewLoader wraps p. A zero timeout leaves deadlines to the provider.
func NewLoader(p Provider, timeout time.Duration, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.NewNop()
	}
	return &Loader{provider: p, timeout: timeout, log: log.With("component", "loader")}
}

// Ticket identifies one Load call.
type Ticket uint64

// Begin marks the start of a new load and returns its ticket. Any earlier
// ticket becomes stale.
func (l *Loader) Begin() Ticket {
	return Ticket(l.generation.Add(1))
}

// Current reports whether t is still the latest ticket.
func (l *Loader) Current(t Ticket) bool {
	return uint64(t) == l.generation.Load()
}

// Load fetches the set for subject and topic. When ctx ends first the
// caller gets ctx.Err() while the shared call continues for any other
// waiter.
func (l *Loader) Load(ctx context.Context, subject, topic string) (*quiz.QuestionSet, error) {
	return l.LoadTicket(ctx, l.Begin(), subject, topic)
}

// LoadTicket is Load with a ticket taken earlier by Begin, for callers that
// need the ticket before the fetch runs.
func (l *Loader) LoadTicket(ctx context.Context, t Ticket, subject, topic string) (*quiz.QuestionSet, error) {
	key := subject + "\x00" + strings.ToLower(strings.TrimSpace(topic))

	ch := l.group.DoChan(key, func() (any, error) {
		fctx := context.WithoutCancel(ctx)
		if l.timeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(fctx, l.timeout)
			defer cancel()
		}
		return l.provider.Fetch(fctx, subject, topic)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if !l.Current(t) {
		l.log.Debug("discarding stale question set", "subject", subject, "topic", topic)
		return nil, ErrSuperseded
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		l.log.Debug("question set shared", "subject", subject, "topic", topic)
	}
	return res.Val.(*quiz.QuestionSet), nil
}
