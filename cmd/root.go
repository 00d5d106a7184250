package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkha/tierquiz/internal/config"
	"github.com/tkha/tierquiz/internal/logger"
	"github.com/tkha/tierquiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "tierquiz",
	Short: "Three-tier quizzes on any topic, in the terminal",
	Long: `tierquiz generates a fresh question set for a subject and topic and walks
you through it in three tiers: a multiple-choice warm-up, true/false
challenge clusters and short answers to finish.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TIERQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file layered over the defaults")
	rootCmd.PersistentFlags().Bool("log-stderr", false, "Write logs to stderr instead of the log file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads --config and applies --db on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Database = p
	}
	return cfg, nil
}

// newLogger logs to the configured file so output never mixes with the
// TUI or the quiz prompts, unless --log-stderr is set.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*logger.Logger, error) {
	if toStderr, _ := cmd.Flags().GetBool("log-stderr"); toStderr {
		return logger.New(cfg.Log.Mode)
	}
	path, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	return logger.New(cfg.Log.Mode, path)
}

// resolveDBPath returns the database path using the config value (set by
// --db or TIERQUIZ_DB), then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.Database != "" {
		return cfg.Database, store.EnsureDir(cfg.Database)
	}
	return store.DefaultDBPath()
}

// openStore opens the event database for commands that only read it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
