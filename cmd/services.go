package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkha/tierquiz/internal/config"
	"github.com/tkha/tierquiz/internal/llm"
	"github.com/tkha/tierquiz/internal/logger"
	"github.com/tkha/tierquiz/internal/narration"
	"github.com/tkha/tierquiz/internal/questionset"
	"github.com/tkha/tierquiz/internal/speech"
	"github.com/tkha/tierquiz/internal/store"
)

// services holds everything a command may need, built once from the flags,
// the config file and the environment.
type services struct {
	cfg    *config.Config
	llmCfg llm.Config
	log    *logger.Logger
	store  *store.Store
}

// newServices loads config, the logger and the event store.
func newServices(cmd *cobra.Command) (*services, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Debug("services ready", "db", dbPath)
	return &services{cfg: cfg, llmCfg: llm.ConfigFromEnv(), log: log, store: st}, nil
}

func (s *services) Close() {
	s.store.Close()
	s.log.Sync()
}

// generator builds the LLM-backed question set provider.
func (s *services) generator(ctx context.Context) (*questionset.Generator, error) {
	provider, err := llm.NewProvider(ctx, s.llmCfg, s.store.EventRepo(), s.log)
	if err != nil {
		return nil, fmt.Errorf("LLM provider: %w", err)
	}
	qcfg := questionset.DefaultConfig()
	qcfg.Subjects = make(map[string]string, len(s.cfg.Subjects))
	for _, sub := range s.cfg.Subjects {
		qcfg.Subjects[sub.ID] = sub.Name
	}
	if s.cfg.Generation.Language != "" {
		qcfg.Language = s.cfg.Generation.Language
	}
	if s.cfg.Generation.MaxTokens > 0 {
		qcfg.MaxTokens = s.cfg.Generation.MaxTokens
	}
	qcfg.Temperature = s.cfg.Generation.Temperature
	return questionset.New(provider, qcfg, s.log), nil
}

// narration builds the read-aloud channel. Speech and playback problems
// degrade to a silent channel with a warning; the quiz still works.
func (s *services) narration(ctx context.Context, force bool) *narration.Channel {
	opts := narration.Options{
		MaxRunes:          s.cfg.Narration.MaxRunes,
		NarrateOnQuestion: s.cfg.Narration.NarrateOnQuestion,
		NarrateFeedback:   s.cfg.Narration.NarrateFeedback,
		Feedback: narration.Feedback{
			Correct:        s.cfg.Narration.Feedback.Correct,
			Incorrect:      s.cfg.Narration.Feedback.Incorrect,
			CorrectShort:   s.cfg.Narration.Feedback.CorrectShort,
			IncorrectShort: s.cfg.Narration.Feedback.IncorrectShort,
		},
	}
	if !s.cfg.Narration.Enabled && !force {
		return narration.New(nil, nil, opts, s.log)
	}

	synth, err := speech.New(ctx, s.cfg.Speech, s.llmCfg, s.store.EventRepo(), s.log)
	if err != nil {
		s.log.Warn("speech unavailable", "error", err)
		return narration.New(nil, nil, opts, s.log)
	}
	player, err := narration.NewExecPlayer(s.cfg.Narration.Player, s.cfg.Speech.SampleRate)
	if err != nil {
		s.log.Warn("audio player unavailable", "error", err)
		return narration.New(synth, nil, opts, s.log)
	}
	return narration.New(synth, player, opts, s.log)
}
