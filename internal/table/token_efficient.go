package table

import (
	"strings"
	"unicode"
)

// DefaultDelimiter separates columns in token-efficient output.
const DefaultDelimiter = "|"

// minSurvivingColumns is the column-filter fallback threshold: pruning that
// leaves fewer columns than this is discarded and all columns are kept.
const minSurvivingColumns = 2

// minSurvivingRows is the row-filter fallback threshold: a question-word
// filter that keeps fewer rows than this is discarded in favor of a plain
// head cut.
const minSurvivingRows = 10

// relevanceKeywords marks headers that stay regardless of question overlap.
// Matched case-insensitively as substrings of the header text.
var relevanceKeywords = []string{
	"date", "year", "number", "count", "total", "amount", "value",
	"placing", "place", "rank", "position", "finish", "result",
}

// FormatTokenEfficient renders a table as delimiter-joined lines with no
// structural markup, optionally pruning columns and rows by relevance to
// the question. An empty question disables pruning. The first line is
// always the cleaned header; maxRows=0 yields only that line.
func FormatTokenEfficient(t Table, question, delimiter string, maxRows int) string {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	if maxRows < 0 {
		maxRows = 0
	}

	questionWords := wordSet(question)
	columns := selectColumns(t, questionWords)
	rows := selectRows(t, questionWords, maxRows)

	lines := make([]string, 0, len(rows)+1)
	headerCells := make([]string, 0, len(columns))
	for _, col := range columns {
		headerCells = append(headerCells, CleanValue(t.Header[col], delimiter))
	}
	lines = append(lines, strings.Join(headerCells, delimiter))

	for _, row := range rows {
		cells := make([]string, 0, len(columns))
		for _, col := range columns {
			cells = append(cells, CleanValue(t.Cell(row, col), delimiter))
		}
		lines = append(lines, strings.Join(cells, delimiter))
	}
	return strings.Join(lines, "\n")
}

// selectColumns returns the indexes of columns relevant to the question.
// Without question words every column is kept, and a filter that keeps
// fewer than two columns is discarded to guard against over-pruning.
func selectColumns(t Table, questionWords map[string]struct{}) []int {
	all := make([]int, len(t.Header))
	for i := range t.Header {
		all[i] = i
	}
	if len(questionWords) == 0 {
		return all
	}

	kept := make([]int, 0, len(t.Header))
	for i, header := range t.Header {
		if headerMatchesQuestion(header, questionWords) || headerHasKeyword(header) {
			kept = append(kept, i)
		}
	}
	if len(kept) < minSurvivingColumns {
		return all
	}
	return kept
}

func headerMatchesQuestion(header string, questionWords map[string]struct{}) bool {
	for word := range wordSet(header) {
		if _, ok := questionWords[word]; ok {
			return true
		}
	}
	return false
}

func headerHasKeyword(header string) bool {
	lowered := strings.ToLower(header)
	for _, keyword := range relevanceKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// selectRows returns the indexes of rows to emit, capped at maxRows.
// The question-word filter only engages when the table does not already
// fit, and is discarded when it keeps fewer than minSurvivingRows rows.
func selectRows(t Table, questionWords map[string]struct{}, maxRows int) []int {
	total := len(t.Rows)
	if len(questionWords) == 0 || total <= maxRows {
		return headRows(total, maxRows)
	}

	matched := make([]int, 0, total)
	for i, row := range t.Rows {
		joined := strings.ToLower(strings.Join(row, " "))
		for word := range questionWords {
			if strings.Contains(joined, word) {
				matched = append(matched, i)
				break
			}
		}
	}
	if len(matched) < minSurvivingRows {
		return headRows(total, maxRows)
	}
	if len(matched) > maxRows {
		matched = matched[:maxRows]
	}
	return matched
}

func headRows(total, maxRows int) []int {
	n := total
	if n > maxRows {
		n = maxRows
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

// wordSet splits text into a set of lowercase alphanumeric words.
func wordSet(text string) map[string]struct{} {
	words := map[string]struct{}{}
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words[current.String()] = struct{}{}
			current.Reset()
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return words
}
