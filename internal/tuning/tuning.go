// Package tuning loads the game tuning file. All numbers that shape
// play (lives, scoring, tier ladder, timings) are configuration with
// built-in defaults, so the two games can be retuned without a rebuild.
package tuning

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/evalund/glosor/internal/engine"
)

// Tuning is the loaded game configuration.
type Tuning struct {
	Snake GameTuning `mapstructure:"snake"`
	Whack GameTuning `mapstructure:"whack"`

	// MinTerms is the preparation's desired term count before the
	// generation fallback kicks in.
	MinTerms int `mapstructure:"min_terms"`

	// MaxDistractors bounds each term's sampled distractor pool.
	MaxDistractors int `mapstructure:"max_distractors"`
}

// GameTuning is one variant's numbers, mapped onto an engine config.
type GameTuning struct {
	Lives              int   `mapstructure:"lives"`
	FeedbackDelayMs    int   `mapstructure:"feedback_delay_ms"`
	BaseScore          int   `mapstructure:"base_score"`
	TimeBonus          int   `mapstructure:"time_bonus"`
	TimeBonusUnderMs   int   `mapstructure:"time_bonus_under_ms"`
	StreakBonus        int   `mapstructure:"streak_bonus"`
	DowngradeWindow    int   `mapstructure:"downgrade_window"`
	DowngradeThreshold int   `mapstructure:"downgrade_threshold"`
	TierStreaks        []int `mapstructure:"tier_streaks"`
}

// Load reads the tuning file, or returns the defaults when none exists.
// configFile overrides the search path when non-empty.
func Load(configFile string) (*Tuning, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("tuning")
		v.AddConfigPath("$HOME/.config/glosor")
	}

	setDefaults(v, "snake", engine.DefaultSnakeConfig())
	setDefaults(v, "whack", engine.DefaultWhackConfig())
	v.SetDefault("min_terms", 6)
	v.SetDefault("max_distractors", 5)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read tuning file: %w", err)
		}
	}

	var t Tuning
	if err := v.Unmarshal(&t); err != nil {
		return nil, fmt.Errorf("invalid tuning format: %w", err)
	}
	return &t, nil
}

func setDefaults(v *viper.Viper, game string, cfg engine.Config) {
	v.SetDefault(game+".lives", cfg.Lives)
	v.SetDefault(game+".feedback_delay_ms", int(cfg.FeedbackDelay/time.Millisecond))
	v.SetDefault(game+".base_score", cfg.Scoring.Base)
	v.SetDefault(game+".time_bonus", cfg.Scoring.TimeBonus)
	v.SetDefault(game+".time_bonus_under_ms", int(cfg.Scoring.TimeBonusUnder/time.Millisecond))
	v.SetDefault(game+".streak_bonus", cfg.Scoring.StreakBonus)
	v.SetDefault(game+".downgrade_window", cfg.DowngradeWindow)
	v.SetDefault(game+".downgrade_threshold", cfg.DowngradeThreshold)

	streaks := make([]int, len(cfg.Tiers))
	for i, tier := range cfg.Tiers {
		streaks[i] = tier.MinStreak
	}
	v.SetDefault(game+".tier_streaks", streaks)
}

// SnakeConfig applies the snake tuning on top of the engine defaults.
func (t *Tuning) SnakeConfig() engine.Config {
	return t.Snake.apply(engine.DefaultSnakeConfig())
}

// WhackConfig applies the whack tuning on top of the engine defaults.
func (t *Tuning) WhackConfig() engine.Config {
	return t.Whack.apply(engine.DefaultWhackConfig())
}

// apply overlays the tuned numbers on a base config. Tier streak
// thresholds replace the defaults positionally; extra entries beyond
// the ladder length are ignored.
func (g GameTuning) apply(cfg engine.Config) engine.Config {
	if g.Lives > 0 {
		cfg.Lives = g.Lives
	}
	if g.FeedbackDelayMs > 0 {
		cfg.FeedbackDelay = time.Duration(g.FeedbackDelayMs) * time.Millisecond
	}
	if g.BaseScore > 0 {
		cfg.Scoring.Base = g.BaseScore
	}
	if g.TimeBonus > 0 {
		cfg.Scoring.TimeBonus = g.TimeBonus
	}
	if g.TimeBonusUnderMs > 0 {
		cfg.Scoring.TimeBonusUnder = time.Duration(g.TimeBonusUnderMs) * time.Millisecond
	}
	if g.StreakBonus > 0 {
		cfg.Scoring.StreakBonus = g.StreakBonus
	}
	if g.DowngradeWindow > 0 {
		cfg.DowngradeWindow = g.DowngradeWindow
	}
	if g.DowngradeThreshold > 0 {
		cfg.DowngradeThreshold = g.DowngradeThreshold
	}
	for i, streak := range g.TierStreaks {
		if i >= len(cfg.Tiers) {
			break
		}
		cfg.Tiers[i].MinStreak = streak
	}
	return cfg
}
