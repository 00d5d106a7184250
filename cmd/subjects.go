package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tkha/tierquiz/internal/access"
	"github.com/tkha/tierquiz/internal/config"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List subjects and whether they are unlocked",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		gate := access.NewGate(cfg)
		if key, _ := cmd.Flags().GetString("key"); key != "" {
			if _, err := applyKey(gate, cfg, key); err != nil {
				return err
			}
		}
		printSubjects(cmd.OutOrStdout(), cfg, gate)
		return nil
	},
}

func init() {
	subjectsCmd.Flags().String("key", "", "Show the lock state after applying this license key")
}

func printSubjects(w io.Writer, cfg *config.Config, gate *access.Gate) {
	fmt.Fprintf(w, "%-16s  %-28s  %s\n", "ID", "Name", "Status")
	fmt.Fprintln(w, strings.Repeat("─", 56))
	for _, s := range cfg.Subjects {
		status := "locked"
		if gate.IsUnlocked(s.ID) {
			status = "open"
		}
		fmt.Fprintf(w, "%-16s  %-28s  %s\n", s.ID, truncate(s.Name, 28), status)
	}
}
