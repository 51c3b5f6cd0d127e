package terms

import "strings"

// Sanitize trims surrounding whitespace from a candidate text field.
func Sanitize(s string) string {
	return strings.TrimSpace(s)
}

// IsNonEmpty reports whether s still has content after sanitization.
func IsNonEmpty(s string) bool {
	return len(Sanitize(s)) > 0
}

// sanitizeExamples trims, drops empties and deduplicates examples,
// keeping at most MaxExamples in input order.
func sanitizeExamples(examples []string) []string {
	var out []string
	seen := make(map[string]bool, len(examples))
	for _, ex := range examples {
		ex = Sanitize(ex)
		if ex == "" || seen[strings.ToLower(ex)] {
			continue
		}
		seen[strings.ToLower(ex)] = true
		out = append(out, ex)
		if len(out) == MaxExamples {
			break
		}
	}
	return out
}
