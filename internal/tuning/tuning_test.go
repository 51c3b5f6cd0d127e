package tuning

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/evalund/glosor/internal/engine"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tn, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	if tn.MinTerms != 6 || tn.MaxDistractors != 5 {
		t.Errorf("unexpected defaults: %+v", tn)
	}

	snake := tn.SnakeConfig()
	base := engine.DefaultSnakeConfig()
	if snake.Lives != base.Lives || len(snake.Tiers) != len(base.Tiers) {
		t.Errorf("snake defaults drifted: %+v", snake)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	content := []byte(`
min_terms: 10
snake:
  lives: 5
  base_score: 20
  tier_streaks: [0, 2, 5, 9]
whack:
  feedback_delay_ms: 800
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write tuning file: %v", err)
	}

	tn, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if tn.MinTerms != 10 {
		t.Errorf("min_terms override lost: %d", tn.MinTerms)
	}

	snake := tn.SnakeConfig()
	if snake.Lives != 5 || snake.Scoring.Base != 20 {
		t.Errorf("snake overrides lost: %+v", snake)
	}
	if snake.Tiers[1].MinStreak != 2 || snake.Tiers[3].MinStreak != 9 {
		t.Errorf("tier streak overrides lost: %+v", snake.Tiers)
	}
	// Untouched numbers keep their defaults.
	if snake.Scoring.StreakBonus != engine.DefaultSnakeConfig().Scoring.StreakBonus {
		t.Errorf("unrelated default changed: %d", snake.Scoring.StreakBonus)
	}

	whack := tn.WhackConfig()
	if whack.FeedbackDelay != 800*time.Millisecond {
		t.Errorf("whack feedback delay override lost: %v", whack.FeedbackDelay)
	}
	if whack.Lives != engine.DefaultWhackConfig().Lives {
		t.Errorf("whack lives default changed: %d", whack.Lives)
	}
}
