package engine

// tierForStreak returns the highest tier index whose MinStreak the
// given streak has reached. Tiers must be ordered by ascending
// MinStreak.
func tierForStreak(tiers []Tier, streak int) int {
	idx := 0
	for i, t := range tiers {
		if streak >= t.MinStreak {
			idx = i
		}
	}
	return idx
}

// shouldDowngrade reports whether the softening rule applies: looking at
// the last window results (the just-recorded mistake included), at least
// threshold of them were incorrect.
func shouldDowngrade(results []RoundResult, window, threshold int) bool {
	if window <= 0 || threshold <= 0 {
		return false
	}
	start := len(results) - window
	if start < 0 {
		start = 0
	}
	wrong := 0
	for _, r := range results[start:] {
		if !r.Correct {
			wrong++
		}
	}
	return wrong >= threshold
}
