package score

import "fmt"

// NormalizedSet normalizes every token and collapses duplicates.
func NormalizedSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[NormalizeToken(token)] = struct{}{}
	}
	return set
}

// SetsMatch reports whether two answer lists denote the same normalized set.
// Equality is exact set equality: same cardinality, same members.
func SetsMatch(golds, preds []string) bool {
	goldSet := NormalizedSet(golds)
	predSet := NormalizedSet(preds)
	if len(goldSet) != len(predSet) {
		return false
	}
	for token := range goldSet {
		if _, ok := predSet[token]; !ok {
			return false
		}
	}
	return true
}

// DenotationAccuracy computes the fraction of examples whose predicted
// answer set exactly equals the gold answer set after normalization.
// Mismatched sequence lengths are a caller contract violation and fail
// immediately; an empty input scores 0.0 rather than dividing by zero.
func DenotationAccuracy(golds, preds [][]string) (float64, error) {
	if len(golds) != len(preds) {
		return 0, fmt.Errorf("denotation accuracy: %d gold sets vs %d predicted sets", len(golds), len(preds))
	}
	if len(golds) == 0 {
		return 0, nil
	}
	correct := 0
	for i := range golds {
		if SetsMatch(golds[i], preds[i]) {
			correct++
		}
	}
	return float64(correct) / float64(len(golds)), nil
}
