package score

import "strings"

// NormalizeToken canonicalizes an answer token for denotation comparison.
//
// The token is trimmed, unquoted, lowercased, whitespace-collapsed, and
// stripped of trailing punctuation, thousands commas, a percent suffix, and
// a dollar prefix. If the remainder is a finite decimal number it is
// replaced by its exact canonical form ("1,000.50" -> "1000.5"); otherwise
// the stripped string is returned as-is. The function is idempotent:
// normalizing a normalized token is a no-op.
func NormalizeToken(token string) string {
	t := strings.ToLower(token)
	// Each strip can expose work for another: removing a comma can leave
	// stray whitespace (",\n0a9"), and removing a trailing period can
	// expose a percent sign ("5%."). The pass repeats until stable so the
	// result survives re-normalization.
	for {
		next := stripSurroundingQuotes(strings.TrimSpace(t))
		next = strings.Join(strings.Fields(next), " ")
		next = strings.TrimRight(next, " .,")
		next = strings.ReplaceAll(next, ",", "")
		next = stripUnits(next)
		if next == t {
			break
		}
		t = next
	}
	if canonical, ok := canonicalDecimal(t); ok {
		return canonical
	}
	return t
}

// stripSurroundingQuotes removes matched quote pairs. Stripping repeats
// until no pair remains so the result is stable under re-normalization.
func stripSurroundingQuotes(s string) string {
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first != last || (first != '"' && first != '\'') {
			return s
		}
		s = s[1 : len(s)-1]
	}
	return s
}

// stripUnits removes percent suffixes and dollar prefixes. Stripping
// repeats until stable for the same idempotency reason as quotes.
func stripUnits(s string) string {
	for {
		next := strings.TrimSuffix(s, "%")
		next = strings.TrimPrefix(next, "$")
		if next == s {
			return s
		}
		s = next
	}
}
