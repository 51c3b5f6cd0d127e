package terms

import (
	"math/rand/v2"
	"strings"
)

// MinDistractors is the floor applied when the pool allows it: a round with
// at least two alternatives always shows at least two distractors.
const MinDistractors = 2

// BuildDistractors samples plausible wrong answers for target from the
// texts of every other term in pool. Returns between min(2, poolSize) and
// min(maxCount, poolSize) entries, never the target itself, no duplicates.
// An empty pool yields nil; the round then degrades to a pure recall
// prompt instead of failing.
func BuildDistractors(target Term, pool []Term, maxCount int, rng *rand.Rand) []string {
	targetKey := strings.ToLower(target.Term)

	candidates := make([]string, 0, len(pool))
	for _, t := range pool {
		if strings.ToLower(t.Term) == targetKey {
			continue
		}
		candidates = append(candidates, t.Term)
	}
	if len(candidates) == 0 {
		return nil
	}

	// Fisher–Yates, then take the bounded prefix.
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	n := maxCount
	if n < MinDistractors {
		n = MinDistractors
	}
	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n]
}
