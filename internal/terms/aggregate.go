package terms

import "strings"

// Aggregate merges term candidates into one record per distinct term text,
// keyed case-insensitively. Output order is first-seen order of distinct
// keys. Merge policy on collision:
//
//   - the longer definition wins (tie keeps the earlier one)
//   - examples are unioned, capped at MaxExamples
//   - generated provenance is sticky: if any contributor was generated,
//     the merged record is generated
//
// Deterministic for a stable input order; no randomness here.
func Aggregate(candidates []Term) []Term {
	byKey := make(map[string]int, len(candidates))
	var out []Term

	for _, c := range candidates {
		key := strings.ToLower(c.Term)
		idx, seen := byKey[key]
		if !seen {
			byKey[key] = len(out)
			out = append(out, c)
			continue
		}
		out[idx] = merge(out[idx], c)
	}
	return out
}

func merge(existing, incoming Term) Term {
	if len(incoming.Definition) > len(existing.Definition) {
		existing.Definition = incoming.Definition
	}
	existing.Examples = unionExamples(existing.Examples, incoming.Examples)
	if incoming.Source == SourceGenerated {
		existing.Source = SourceGenerated
	}
	return existing
}

func unionExamples(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	merged := make([]string, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	return sanitizeExamples(merged)
}
