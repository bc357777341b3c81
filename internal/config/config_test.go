package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"imageguess-engine/internal/domain"
)

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
questions:
  path: /data/pool.json
session:
  mode: timeAttack
  teams: 4
  timer:
    perTeamTotalSeconds: 120
  filter:
    language: zh
    categories: [person, place]
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Questions.Path != "/data/pool.json" {
		t.Fatalf("path override lost: %q", cfg.Questions.Path)
	}
	// Untouched keys keep their defaults.
	if cfg.Questions.TTL != "10m" || cfg.Session.QuestionsPerRound != 10 {
		t.Fatalf("defaults clobbered: %+v", cfg)
	}

	sc := cfg.SessionConfig()
	if sc.Mode != domain.ModeTimeAttack || sc.TeamCount != 4 {
		t.Fatalf("unexpected session config: %+v", sc)
	}
	if sc.Timer.PerTeamTotalSeconds != 120 {
		t.Fatalf("timer override lost: %+v", sc.Timer)
	}
	if sc.Filter.Language != "zh" || len(sc.Filter.Categories) != 2 {
		t.Fatalf("filter not mapped: %+v", sc.Filter)
	}
	if err := sc.Validate(); err != nil {
		t.Fatalf("loaded config should validate: %v", err)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestDefaultSessionConfigValidates(t *testing.T) {
	if err := Default().SessionConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestTTLDuration(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("empty string should fall back, got %v", got)
	}
	if got := TTLDuration("bogus", time.Minute); got != time.Minute {
		t.Fatalf("invalid string should fall back, got %v", got)
	}
	if got := TTLDuration("90s", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
}
