package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tkha/tierquiz/internal/llm"
	"github.com/tkha/tierquiz/internal/narration"
	"github.com/tkha/tierquiz/internal/speech"
)

var speakCmd = &cobra.Command{
	Use:   "speak TEXT...",
	Short: "Read text aloud with the configured speech provider",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSpeak,
}

func init() {
	speakCmd.Flags().StringP("out", "o", "", "Write a WAV file instead of playing")
}

func runSpeak(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	outPath, _ := cmd.Flags().GetString("out")

	svc, err := newServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	if outPath != "" {
		synth, err := speech.New(cmd.Context(), svc.cfg.Speech, svc.llmCfg, svc.store.EventRepo(), svc.log)
		if err != nil {
			return err
		}
		if synth == nil {
			return errors.New("speech provider is disabled")
		}
		ctx := llm.WithPurpose(cmd.Context(), llm.PurposeNarration)
		pcm, err := synth.Synthesize(ctx, text)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, narration.WAV(pcm, svc.cfg.Speech.SampleRate), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes of audio)\n", outPath, len(pcm))
		return nil
	}

	ch := svc.narration(cmd.Context(), true)
	defer ch.Close()
	if !ch.RequestNarration(text) {
		return errors.New("nothing was narrated; check the speech provider and narration.player (see the log)")
	}
	ch.Wait()
	return nil
}
