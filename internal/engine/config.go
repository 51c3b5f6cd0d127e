package engine

import "time"

// Tier is one step of the adaptive difficulty ladder. Tiers follow the
// SOLO taxonomy naming used elsewhere in the app: each sustained streak
// threshold moves the player one level up.
type Tier struct {
	// Name is the display label for the tier.
	Name string

	// MinStreak is the streak count that unlocks this tier.
	MinStreak int

	// Distractors is how many wrong alternatives appear on the board at
	// this tier, bounded by what the term's pool actually holds.
	Distractors int

	// TickInterval is the movement cadence for grid boards. Lower is
	// faster. Zero for boards without tick-driven movement.
	TickInterval time.Duration

	// ShowTime is how long a round stays answerable on expiry boards
	// before it times out. Zero disables the expiry timer.
	ShowTime time.Duration
}

// Scoring is the point policy applied on each correct answer.
type Scoring struct {
	// Base points per correct answer.
	Base int

	// TimeBonus is added when the answer lands under TimeBonusUnder.
	TimeBonus      int
	TimeBonusUnder time.Duration

	// StreakBonus is added per point of current streak.
	StreakBonus int
}

// Config parameterizes one game variant. The numbers are deliberately
// configuration, not constants: the two games ship different tunings and
// neither is canonical.
type Config struct {
	Tiers   []Tier
	Scoring Scoring

	// Lives is the starting life count. Every mistake costs one; zero
	// lives ends the game regardless of remaining rounds.
	Lives int

	// FeedbackDelay is the timed pause between resolving a round and
	// advancing to the next one.
	FeedbackDelay time.Duration

	// DowngradeWindow and DowngradeThreshold drive the softening rule: a
	// mistake steps the tier down one level when at least Threshold of
	// the last Window round results were incorrect.
	DowngradeWindow    int
	DowngradeThreshold int
}

// Validate checks a config for playability.
func (c Config) Validate() error {
	if len(c.Tiers) == 0 {
		return errNoTiers
	}
	if c.Lives <= 0 {
		return errNoLives
	}
	return nil
}

// DefaultSnakeConfig returns the grid-movement tuning: four SOLO tiers
// that shorten the tick interval and widen the distractor set as the
// streak grows.
func DefaultSnakeConfig() Config {
	return Config{
		Tiers: []Tier{
			{Name: "unistructural", MinStreak: 0, Distractors: 2, TickInterval: 400 * time.Millisecond},
			{Name: "multistructural", MinStreak: 3, Distractors: 3, TickInterval: 330 * time.Millisecond},
			{Name: "relational", MinStreak: 6, Distractors: 4, TickInterval: 260 * time.Millisecond},
			{Name: "extended-abstract", MinStreak: 10, Distractors: 5, TickInterval: 200 * time.Millisecond},
		},
		Scoring: Scoring{
			Base:           10,
			TimeBonus:      5,
			TimeBonusUnder: 4 * time.Second,
			StreakBonus:    2,
		},
		Lives:              3,
		FeedbackDelay:      1200 * time.Millisecond,
		DowngradeWindow:    3,
		DowngradeThreshold: 2,
	}
}

// DefaultWhackConfig returns the expiry-board tuning: same ladder shape,
// but difficulty scales by shrinking the answer window instead of speed.
func DefaultWhackConfig() Config {
	return Config{
		Tiers: []Tier{
			{Name: "unistructural", MinStreak: 0, Distractors: 2, ShowTime: 6 * time.Second},
			{Name: "multistructural", MinStreak: 3, Distractors: 3, ShowTime: 5 * time.Second},
			{Name: "relational", MinStreak: 6, Distractors: 4, ShowTime: 4 * time.Second},
			{Name: "extended-abstract", MinStreak: 10, Distractors: 5, ShowTime: 3 * time.Second},
		},
		Scoring: Scoring{
			Base:           10,
			TimeBonus:      5,
			TimeBonusUnder: 2500 * time.Millisecond,
			StreakBonus:    2,
		},
		Lives:              3,
		FeedbackDelay:      1200 * time.Millisecond,
		DowngradeWindow:    3,
		DowngradeThreshold: 2,
	}
}
