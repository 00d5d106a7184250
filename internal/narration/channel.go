// Package narration reads questions and answer cues aloud. At most one
// utterance is audible: a new request supersedes whatever is being
// synthesized or played.
package narration

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/tkha/tierquiz/internal/engine"
	"github.com/tkha/tierquiz/internal/llm"
	"github.com/tkha/tierquiz/internal/logger"
	"github.com/tkha/tierquiz/internal/speech"
	"github.com/tkha/tierquiz/internal/textclean"
)

// DefaultMaxRunes caps the narrated text.
const DefaultMaxRunes = 400

// Player plays PCM audio and returns when playback ends or ctx is done.
type Player interface {
	Play(ctx context.Context, pcm []byte) error
}

// Feedback holds the spoken answer cues. The short phrase is tried when the
// full one cannot be synthesized.
type Feedback struct {
	Correct        string
	Incorrect      string
	CorrectShort   string
	IncorrectShort string
}

// Options configures a Channel.
type Options struct {
	MaxRunes          int
	NarrateOnQuestion bool
	NarrateFeedback   bool
	Feedback          Feedback
}

// Channel owns the single narration slot.
type Channel struct {
	synth  speech.Synthesizer
	player Player
	log    *logger.Logger

	maxRunes   int
	feedback   Feedback
	onQuestion atomic.Bool
	onFeedback atomic.Bool

	mu      sync.Mutex
	lastKey string
	// inflight is the key still being synthesized or played; gen tells a
	// finishing worker whether it is still the latest.
	inflight string
	gen      uint64
	cancel   context.CancelFunc
	closed   bool

	// playMu serialises playback so a superseded utterance has fully
	// stopped before the next starts.
	playMu sync.Mutex
	wg     sync.WaitGroup
}

// New creates a channel. A nil synthesizer or player yields a channel that
// accepts requests and does nothing.
func New(synth speech.Synthesizer, player Player, opts Options, log *logger.Logger) *Channel {
	if log == nil {
		log = logger.NewNop()
	}
	if opts.MaxRunes <= 0 {
		opts.MaxRunes = DefaultMaxRunes
	}
	c := &Channel{
		synth:    synth,
		player:   player,
		log:      log.With("component", "narration"),
		maxRunes: opts.MaxRunes,
		feedback: opts.Feedback,
	}
	c.onQuestion.Store(opts.NarrateOnQuestion)
	c.onFeedback.Store(opts.NarrateFeedback)
	return c
}

// Key returns the normalised text a request is deduplicated on and that is
// actually spoken.
func (c *Channel) Key(text string) string {
	s := strings.Join(strings.Fields(textclean.Sanitize(text)), " ")
	if utf8.RuneCountInString(s) <= c.maxRunes {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:c.maxRunes]))
}

// RequestNarration starts narrating text unless it normalises to nothing or
// to the text most recently requested. Any utterance in flight is cancelled
// first. It reports whether a new utterance was started.
func (c *Channel) RequestNarration(text string) bool {
	return c.start(c.Key(text), "", true)
}

// RequestFeedback speaks the correct or incorrect cue when the feedback
// toggle is on. It supersedes any question being read. The same cue is
// dropped only while it is still in flight, so two correct answers in a row
// are both acknowledged.
func (c *Channel) RequestFeedback(correct bool) bool {
	if !c.onFeedback.Load() {
		return false
	}
	phrase, short := c.feedback.Incorrect, c.feedback.IncorrectShort
	if correct {
		phrase, short = c.feedback.Correct, c.feedback.CorrectShort
	}
	return c.start(c.Key(phrase), c.Key(short), false)
}

// start cancels the utterance in flight and speaks key. With dedupeLast the
// request is dropped when key matches the most recent request; otherwise
// only when it matches the one still in flight.
func (c *Channel) start(key, fallback string, dedupeLast bool) bool {
	if key == "" || c.synth == nil || c.player == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	if (dedupeLast && key == c.lastKey) || (!dedupeLast && key == c.inflight) {
		return false
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.lastKey = key
	c.inflight = key
	c.gen++

	ctx, cancel := context.WithCancel(llm.WithPurpose(context.Background(), llm.PurposeNarration))
	c.cancel = cancel
	c.wg.Add(1)
	go c.run(ctx, c.gen, key, fallback)
	return true
}

func (c *Channel) run(ctx context.Context, gen uint64, text, fallback string) {
	defer c.wg.Done()
	defer c.finish(gen)

	audio, err := c.synth.Synthesize(ctx, text)
	if ctx.Err() != nil {
		return
	}
	if (err != nil || len(audio) == 0) && fallback != "" && fallback != text {
		c.log.Debug("narration falling back to short phrase", "error", err)
		audio, err = c.synth.Synthesize(ctx, fallback)
		if ctx.Err() != nil {
			return
		}
	}
	if err != nil {
		c.log.Warn("narration skipped", "error", err)
		return
	}
	if len(audio) == 0 {
		c.log.Warn("narration skipped", "error", speech.ErrNoAudio)
		return
	}

	c.playMu.Lock()
	defer c.playMu.Unlock()
	if ctx.Err() != nil {
		return
	}
	if err := c.player.Play(ctx, audio); err != nil && ctx.Err() == nil {
		c.log.Warn("playback failed", "error", err)
	}
}

func (c *Channel) finish(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen == gen {
		c.inflight = ""
	}
}

// OnQuestionActivated narrates the new question when the toggle is on.
func (c *Channel) OnQuestionActivated(ev engine.QuestionActivated) {
	if c.onQuestion.Load() {
		c.RequestNarration(ev.Question.SpeechText())
	}
}

var _ engine.Listener = (*Channel)(nil)

// SetNarrateOnQuestion switches automatic question narration.
func (c *Channel) SetNarrateOnQuestion(on bool) { c.onQuestion.Store(on) }

// NarrateOnQuestion reports the toggle.
func (c *Channel) NarrateOnQuestion() bool { return c.onQuestion.Load() }

// SetNarrateFeedback switches the spoken answer cues.
func (c *Channel) SetNarrateFeedback(on bool) { c.onFeedback.Store(on) }

// NarrateFeedback reports the cue toggle.
func (c *Channel) NarrateFeedback() bool { return c.onFeedback.Load() }

// Stop silences the current utterance. The dedupe key is cleared so the
// same text may be requested again.
func (c *Channel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.lastKey = ""
	c.inflight = ""
}

// Wait blocks until every started utterance has finished or been cancelled.
func (c *Channel) Wait() { c.wg.Wait() }

// Close stops narration, refuses further requests and waits for workers.
func (c *Channel) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.Stop()
	c.Wait()
}
