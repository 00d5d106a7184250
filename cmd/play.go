package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkha/tierquiz/internal/access"
	"github.com/tkha/tierquiz/internal/app"
	"github.com/tkha/tierquiz/internal/config"
	"github.com/tkha/tierquiz/internal/engine"
	"github.com/tkha/tierquiz/internal/questionset"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive quiz session",
	RunE:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		c.Flags().String("key", "", "License key to apply before the session starts")
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := newServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	gen, err := svc.generator(ctx)
	if err != nil {
		return err
	}

	gate := access.NewGate(svc.cfg)
	if key, _ := cmd.Flags().GetString("key"); key != "" {
		if _, err := applyKey(gate, svc.cfg, key); err != nil {
			return err
		}
	}

	ch := svc.narration(ctx, false)
	defer ch.Close()

	return app.Run(app.Options{
		Config:     svc.cfg,
		Controller: engine.NewController(gate, svc.log),
		Loader:     questionset.NewLoader(gen, svc.llmCfg.Timeout, svc.log),
		Gate:       gate,
		Narration:  ch,
		Log:        svc.log,
	})
}

// applyKey tries key against every subject in the catalogue and returns
// the subjects it unlocked.
func applyKey(gate *access.Gate, cfg *config.Config, key string) ([]string, error) {
	var unlocked []string
	for _, s := range cfg.Subjects {
		if gate.IsUnlocked(s.ID) {
			continue
		}
		ids, err := gate.Unlock(key, s.ID)
		if errors.Is(err, access.ErrInvalidKey) {
			continue
		}
		if err != nil {
			return nil, err
		}
		unlocked = append(unlocked, ids...)
	}
	if len(unlocked) == 0 {
		return nil, fmt.Errorf("key unlocks no locked subject: %w", access.ErrInvalidKey)
	}
	return unlocked, nil
}
