// Package config loads tierquiz settings from YAML with environment
// overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// AllSubjects is the wildcard accepted in an access key's subject list.
const AllSubjects = "*"

// Config is the full application configuration.
type Config struct {
	Log        LogConfig        `yaml:"log"`
	Database   string           `yaml:"database"`
	Subjects   []Subject        `yaml:"subjects"`
	Access     AccessConfig     `yaml:"access"`
	Narration  NarrationConfig  `yaml:"narration"`
	Speech     SpeechConfig     `yaml:"speech"`
	Generation GenerationConfig `yaml:"generation"`
}

type LogConfig struct {
	Mode string `yaml:"mode"` // dev or prod
	File string `yaml:"file"`
}

// Subject is one entry of the subject catalogue.
type Subject struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// AccessConfig maps license keys to the subjects they unlock.
type AccessConfig struct {
	Open []string   `yaml:"open"`
	Keys []KeyGrant `yaml:"keys"`
}

// KeyGrant unlocks Subjects when Key is entered. "*" unlocks everything.
type KeyGrant struct {
	Key      string   `yaml:"key"`
	Subjects []string `yaml:"subjects"`
}

type NarrationConfig struct {
	Enabled           bool     `yaml:"enabled"`
	NarrateOnQuestion bool     `yaml:"narrate_on_question"`
	NarrateFeedback   bool     `yaml:"narrate_feedback"`
	MaxRunes          int      `yaml:"max_runes"`
	Player            []string `yaml:"player"`

	Feedback FeedbackPhrases `yaml:"feedback"`
}

// FeedbackPhrases are the spoken answer cues. The short forms are used when
// the full phrase cannot be synthesized.
type FeedbackPhrases struct {
	Correct        string `yaml:"correct"`
	Incorrect      string `yaml:"incorrect"`
	CorrectShort   string `yaml:"correct_short"`
	IncorrectShort string `yaml:"incorrect_short"`
}

// SpeechConfig selects the synthesizers. Provider values: gemini, openai,
// mock, none. Fallback may be empty.
type SpeechConfig struct {
	Provider    string `yaml:"provider"`
	Fallback    string `yaml:"fallback"`
	GeminiModel string `yaml:"gemini_model"`
	GeminiVoice string `yaml:"gemini_voice"`
	OpenAIModel string `yaml:"openai_model"`
	OpenAIVoice string `yaml:"openai_voice"`
	SampleRate  int    `yaml:"sample_rate"`
}

type GenerationConfig struct {
	Language    string  `yaml:"language"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// Default returns the embedded configuration.
func Default() *Config {
	cfg, err := parse(defaultYAML, nil)
	if err != nil {
		panic(fmt.Sprintf("embedded default config: %v", err))
	}
	return cfg
}

// Load reads the file at path over the embedded defaults, applies
// TIERQUIZ_* environment overrides and validates the result. An empty path
// loads the defaults only.
func Load(path string) (*Config, error) {
	var overlay []byte
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		overlay = b
	}
	cfg, err := parse(defaultYAML, overlay)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse(base, overlay []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(base, &cfg); err != nil {
		return nil, fmt.Errorf("parse default config: %w", err)
	}
	if len(overlay) > 0 {
		// Lists in the overlay replace the defaults wholesale.
		if err := yaml.Unmarshal(overlay, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	return &cfg, nil
}

// applyEnv overrides selected fields from the environment.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("TIERQUIZ_DB"); v != "" {
		c.Database = v
	}
	if v := getenv("TIERQUIZ_LOG_MODE"); v != "" {
		c.Log.Mode = v
	}
	if v := getenv("TIERQUIZ_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := getenv("TIERQUIZ_SPEECH_PROVIDER"); v != "" {
		c.Speech.Provider = v
	}
	if v := getenv("TIERQUIZ_SPEECH_FALLBACK"); v != "" {
		c.Speech.Fallback = v
	}
	if v := getenv("TIERQUIZ_PLAYER"); v != "" {
		c.Narration.Player = strings.Fields(v)
	}
	if v := getenv("TIERQUIZ_NARRATION"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TIERQUIZ_NARRATION: %w", err)
		}
		c.Narration.Enabled = b
	}
	if v := getenv("TIERQUIZ_NARRATE_FEEDBACK"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TIERQUIZ_NARRATE_FEEDBACK: %w", err)
		}
		c.Narration.NarrateFeedback = b
	}
	if v := getenv("TIERQUIZ_LANGUAGE"); v != "" {
		c.Generation.Language = v
	}
	return nil
}

// Validate checks internal consistency.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Subjects) == 0 {
		errs = append(errs, errors.New("no subjects configured"))
	}
	ids := make(map[string]bool, len(c.Subjects))
	for _, s := range c.Subjects {
		if s.ID == "" || s.Name == "" {
			errs = append(errs, fmt.Errorf("subject %q needs both id and name", s.ID+s.Name))
			continue
		}
		if ids[s.ID] {
			errs = append(errs, fmt.Errorf("duplicate subject id %q", s.ID))
		}
		ids[s.ID] = true
	}
	for _, id := range c.Access.Open {
		if !ids[id] {
			errs = append(errs, fmt.Errorf("open subject %q is not in the catalogue", id))
		}
	}
	for i, g := range c.Access.Keys {
		if strings.TrimSpace(g.Key) == "" {
			errs = append(errs, fmt.Errorf("access key %d is empty", i+1))
		}
		for _, id := range g.Subjects {
			if id != AllSubjects && !ids[id] {
				errs = append(errs, fmt.Errorf("access key %d grants unknown subject %q", i+1, id))
			}
		}
	}
	if c.Narration.MaxRunes <= 0 {
		errs = append(errs, fmt.Errorf("narration.max_runes must be positive, got %d", c.Narration.MaxRunes))
	}
	if c.Narration.NarrateFeedback && (strings.TrimSpace(c.Narration.Feedback.Correct) == "" || strings.TrimSpace(c.Narration.Feedback.Incorrect) == "") {
		errs = append(errs, errors.New("narration.feedback needs correct and incorrect phrases when narrate_feedback is on"))
	}
	if c.Narration.Enabled && len(c.Narration.Player) == 0 {
		errs = append(errs, errors.New("narration.player is required when narration is enabled"))
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		errs = append(errs, fmt.Errorf("generation.temperature %.2f out of range [0,2]", c.Generation.Temperature))
	}
	if c.Speech.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("speech.sample_rate must be positive, got %d", c.Speech.SampleRate))
	}
	return errors.Join(errs...)
}

// Subject looks up a subject by id.
func (c *Config) Subject(id string) (Subject, bool) {
	for _, s := range c.Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// LogPath returns the log file: Log.File when set, otherwise
// $XDG_STATE_HOME/tierquiz/tierquiz.log (~/.local/state when unset). The
// parent directory is created.
func (c *Config) LogPath() (string, error) {
	p := c.Log.File
	if p == "" {
		stateHome := os.Getenv("XDG_STATE_HOME")
		if stateHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home dir: %w", err)
			}
			stateHome = filepath.Join(home, ".local", "state")
		}
		p = filepath.Join(stateHome, "tierquiz", "tierquiz.log")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}
	return p, nil
}
