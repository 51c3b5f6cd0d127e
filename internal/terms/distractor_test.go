package terms

import (
	"math/rand/v2"
	"testing"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func poolOf(names ...string) []Term {
	out := make([]Term, len(names))
	for i, n := range names {
		out[i] = term(n, "def "+n, SourceConcept)
	}
	return out
}

func TestBuildDistractors_Bounds(t *testing.T) {
	pool := poolOf("a", "b", "c", "d", "e", "f")
	target := pool[0]

	for _, tc := range []struct {
		maxCount int
		want     int
	}{
		{maxCount: 3, want: 3},
		{maxCount: 1, want: 2},  // floor of 2 when pool allows
		{maxCount: 10, want: 5}, // never more than available
	} {
		got := BuildDistractors(target, pool, tc.maxCount, testRNG())
		if len(got) != tc.want {
			t.Errorf("maxCount=%d: got %d distractors, want %d", tc.maxCount, len(got), tc.want)
		}
	}
}

func TestBuildDistractors_NeverIncludesTarget(t *testing.T) {
	pool := poolOf("a", "b", "c", "d")
	target := pool[2]

	for seed := uint64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed+1))
		got := BuildDistractors(target, pool, 3, rng)
		seen := map[string]bool{}
		for _, d := range got {
			if d == target.Term {
				t.Fatalf("seed %d: distractors include the target itself", seed)
			}
			if seen[d] {
				t.Fatalf("seed %d: duplicate distractor %q", seed, d)
			}
			seen[d] = true
		}
	}
}

func TestBuildDistractors_SmallPools(t *testing.T) {
	// Pool of one alternative: a single distractor is fine.
	pool := poolOf("a", "b")
	got := BuildDistractors(pool[0], pool, 4, testRNG())
	if len(got) != 1 || got[0] != "b" {
		t.Errorf("expected single distractor b, got %v", got)
	}

	// Pool with only the target: degrade to zero distractors.
	solo := poolOf("a")
	if got := BuildDistractors(solo[0], solo, 4, testRNG()); got != nil {
		t.Errorf("expected nil for empty candidate pool, got %v", got)
	}
}
