package terms

import (
	"sort"
	"strings"
)

// Prioritize reorders ts so that terms with more recorded mistakes surface
// first. weights maps lowercased term text to a summed miss count across
// the consulted materials. The sort is stable: ties and zero-weight terms
// keep their prior relative order, so an all-zero map is a no-op.
func Prioritize(ts []GameTerm, weights map[string]int) []GameTerm {
	if len(weights) == 0 {
		return ts
	}
	sort.SliceStable(ts, func(i, j int) bool {
		return weights[strings.ToLower(ts[i].Term.Term)] > weights[strings.ToLower(ts[j].Term.Term)]
	})
	return ts
}
