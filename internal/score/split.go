package score

import "strings"

// SplitPrediction converts raw model output into normalized answer tokens.
//
// Single-answer questions keep the whole text as one token. Multi-answer
// questions split on "|" first and fall back to "," when the pipe split
// yields at most one piece. When neither split produces anything, the whole
// text is normalized as a single token so scoring still sees one entry.
func SplitPrediction(text string, goldCount int) []string {
	trimmed := strings.TrimSpace(text)
	if goldCount <= 1 {
		return []string{NormalizeToken(trimmed)}
	}

	pieces := splitNonEmpty(trimmed, "|")
	if len(pieces) <= 1 {
		pieces = splitNonEmpty(trimmed, ",")
	}
	if len(pieces) == 0 {
		return []string{NormalizeToken(trimmed)}
	}

	items := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		items = append(items, NormalizeToken(piece))
	}
	return items
}

func splitNonEmpty(text, sep string) []string {
	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
