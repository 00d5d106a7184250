package questionset

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tkha/tierquiz/internal/quiz"
	"github.com/tkha/tierquiz/internal/quiz/quiztest"
)

// gatedProvider blocks each fetch until its topic is released.
type gatedProvider struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started chan string
	calls   atomic.Int32
	err     error
}

func newGatedProvider() *gatedProvider {
	return &gatedProvider{gates: map[string]chan struct{}{}, started: make(chan string, 8)}
}

func (g *gatedProvider) gate(topic string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[topic]
	if !ok {
		ch = make(chan struct{})
		g.gates[topic] = ch
	}
	return ch
}

func (g *gatedProvider) release(topic string) { close(g.gate(topic)) }

func (g *gatedProvider) Fetch(ctx context.Context, subject, topic string) (*quiz.QuestionSet, error) {
	g.calls.Add(1)
	g.started <- topic
	select {
	case <-g.gate(topic):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if g.err != nil {
		return nil, g.err
	}
	return quiztest.Set(subject, topic), nil
}

type loadResult struct {
	set *quiz.QuestionSet
	err error
}

func loadAsync(ctx context.Context, l *Loader, topic string) <-chan loadResult {
	out := make(chan loadResult, 1)
	go func() {
		set, err := l.Load(ctx, "math", topic)
		out <- loadResult{set, err}
	}()
	return out
}

func TestLoader_LatestTopicWins(t *testing.T) {
	p := newGatedProvider()
	l := NewLoader(p, 0, nil)

	first := loadAsync(context.Background(), l, "limits")
	<-p.started
	second := loadAsync(context.Background(), l, "integrals")
	<-p.started

	p.release("limits")
	if r := <-first; !errors.Is(r.err, ErrSuperseded) {
		t.Fatalf("first load = %v, %v; want ErrSuperseded", r.set, r.err)
	}

	p.release("integrals")
	r := <-second
	if r.err != nil {
		t.Fatalf("second load: %v", r.err)
	}
	if r.set.Topic != "integrals" {
		t.Errorf("topic = %q, want integrals", r.set.Topic)
	}
}

func TestLoader_SharesIdenticalFetch(t *testing.T) {
	p := newGatedProvider()
	l := NewLoader(p, 0, nil)

	first := loadAsync(context.Background(), l, "limits")
	<-p.started
	second := loadAsync(context.Background(), l, " Limits ")
	// Give the second caller time to join the in-flight call.
	time.Sleep(20 * time.Millisecond)
	p.release("limits")

	if r := <-first; !errors.Is(r.err, ErrSuperseded) {
		t.Errorf("first load err = %v, want ErrSuperseded", r.err)
	}
	if r := <-second; r.err != nil || r.set == nil {
		t.Errorf("second load = %v, %v", r.set, r.err)
	}
	if n := p.calls.Load(); n != 1 {
		t.Errorf("provider called %d times, want 1", n)
	}
}

func TestLoader_CallerCancel(t *testing.T) {
	p := newGatedProvider()
	l := NewLoader(p, 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	res := loadAsync(ctx, l, "limits")
	<-p.started
	cancel()

	if r := <-res; !errors.Is(r.err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", r.err)
	}
	p.release("limits")
}

func TestLoader_Timeout(t *testing.T) {
	p := newGatedProvider()
	l := NewLoader(p, 10*time.Millisecond, nil)

	_, err := l.Load(context.Background(), "math", "limits")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want DeadlineExceeded", err)
	}
}

func TestLoader_PassesErrorThrough(t *testing.T) {
	p := newGatedProvider()
	p.err = &GenerationError{Kind: KindUnreachable, Subject: "math", Topic: "limits", Err: errors.New("offline")}
	p.release("limits")
	l := NewLoader(p, 0, nil)

	_, err := l.Load(context.Background(), "math", "limits")
	var ge *GenerationError
	if !errors.As(err, &ge) || ge.Kind != KindUnreachable {
		t.Fatalf("err = %v, want unreachable GenerationError", err)
	}
}

func TestLoader_Tickets(t *testing.T) {
	l := NewLoader(newGatedProvider(), 0, nil)
	a := l.Begin()
	if !l.Current(a) {
		t.Fatal("fresh ticket not current")
	}
	b := l.Begin()
	if l.Current(a) || !l.Current(b) {
		t.Errorf("current(a)=%v current(b)=%v", l.Current(a), l.Current(b))
	}
}
