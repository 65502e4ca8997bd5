package score

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// floatTolerance is the absolute difference under which two numeric answers
// are considered equal in the loose comparison.
const floatTolerance = 1e-6

var (
	looseDigitComma = regexp.MustCompile(`(\d),(\d)`)
	dashVariants    = strings.NewReplacer(
		"–", "-", // en dash
		"—", "-", // em dash
		"−", "-", // minus sign
	)
)

// normalizeLoose is the single-best-answer normalizer used by the agent
// scoring path. It is deliberately weaker than NormalizeToken: commas are
// collapsed only between digits, numbers are not canonicalized, and only a
// single trailing period is removed. Keep the two normalizers separate;
// merging them changes scoring on numeric and abstention cases.
func normalizeLoose(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	for {
		next := looseDigitComma.ReplaceAllString(t, "$1$2")
		if next == t {
			break
		}
		t = next
	}
	t = strings.TrimSuffix(t, ".")
	t = dashVariants.Replace(t)
	return strings.Join(strings.Fields(t), " ")
}

// IsAnswerCorrect applies the loose single-answer comparison: an abstention
// ("don't know") is correct only against an abstaining gold answer, and
// otherwise the prediction must string-equal some gold answer or match one
// numerically within floatTolerance. Empty predictions and empty gold sets
// are always incorrect.
func IsAnswerCorrect(prediction string, golds []string) bool {
	pred := normalizeLoose(prediction)
	if pred == "" || len(golds) == 0 {
		return false
	}

	if strings.Contains(pred, "don't know") {
		for _, gold := range golds {
			g := normalizeLoose(gold)
			if strings.Contains(g, "don't know") || strings.Contains(g, "unknown") {
				return true
			}
		}
		return false
	}

	predValue, predIsNumber := parseLooseFloat(pred)
	for _, gold := range golds {
		g := normalizeLoose(gold)
		if g == "" {
			continue
		}
		if pred == g {
			return true
		}
		if predIsNumber {
			if goldValue, ok := parseLooseFloat(g); ok && math.Abs(predValue-goldValue) < floatTolerance {
				return true
			}
		}
	}
	return false
}

func parseLooseFloat(s string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
