package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"imageguess-engine/internal/domain"
)

type Config struct {
	Questions struct {
		Path string `yaml:"path"`
		TTL  string `yaml:"ttl"`
	} `yaml:"questions"`
	Session struct {
		Mode              string `yaml:"mode"`
		QuestionsPerRound int    `yaml:"questionsPerRound"`
		Rounds            int    `yaml:"rounds"`
		Teams             int    `yaml:"teams"`
		Scoring           string `yaml:"scoring"`
		WrongPenalty      bool   `yaml:"wrongPenalty"`
		Timer             struct {
			Enabled             bool `yaml:"enabled"`
			PerQuestionSeconds  int  `yaml:"perQuestionSeconds"`
			PerTeamTotalSeconds int  `yaml:"perTeamTotalSeconds"`
		} `yaml:"timer"`
		Filter struct {
			Language    string   `yaml:"language"`
			Group       string   `yaml:"group"`
			Categories  []string `yaml:"categories"`
			ExtremeOnly bool     `yaml:"extremeOnly"`
		} `yaml:"filter"`
	} `yaml:"session"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the built-in session defaults used when no config file is given.
func Default() Config {
	cfg := Config{}
	cfg.Questions.Path = "questions.json"
	cfg.Questions.TTL = "10m"
	cfg.Session.Mode = string(domain.ModeStandard)
	cfg.Session.QuestionsPerRound = 10
	cfg.Session.Rounds = 1
	cfg.Session.Teams = 2
	cfg.Session.Timer.PerQuestionSeconds = 30
	cfg.Session.Timer.PerTeamTotalSeconds = 180
	cfg.Log.Level = "info"
	return cfg
}

// Load reads YAML config from path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SessionConfig maps the file values onto the engine's config object.
func (c Config) SessionConfig() domain.SessionConfig {
	return domain.SessionConfig{
		Mode:              domain.Mode(c.Session.Mode),
		QuestionsPerRound: c.Session.QuestionsPerRound,
		RoundCount:        c.Session.Rounds,
		TeamCount:         c.Session.Teams,
		Scoring:           domain.ScoringVariant(c.Session.Scoring),
		WrongPenalty:      c.Session.WrongPenalty,
		Timer: domain.TimerConfig{
			Enabled:             c.Session.Timer.Enabled,
			PerQuestionSeconds:  c.Session.Timer.PerQuestionSeconds,
			PerTeamTotalSeconds: c.Session.Timer.PerTeamTotalSeconds,
		},
		Filter: domain.Filter{
			Language:    c.Session.Filter.Language,
			Group:       c.Session.Filter.Group,
			Categories:  c.Session.Filter.Categories,
			ExtremeOnly: c.Session.Filter.ExtremeOnly,
		},
	}
}

// TTLDuration parses a duration string or returns the fallback if empty or invalid.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
