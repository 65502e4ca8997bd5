package table

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	digitCommaPattern = regexp.MustCompile(`(\d),(\d)`)
	slashDatePattern  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// CleanValue prepares a cell or header value for emission.
//
// Newlines become spaces, occurrences of the column delimiter become spaces
// so the column count survives, digit-grouping commas are dropped, and a
// literal M/D/YYYY value is rewritten to zero-padded YYYY-MM-DD. No other
// date formats are recognized.
func CleanValue(value, delimiter string) string {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.ReplaceAll(cleaned, "\r\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	if delimiter != "" {
		cleaned = strings.ReplaceAll(cleaned, delimiter, " ")
	}
	cleaned = stripDigitCommas(cleaned)
	if match := slashDatePattern.FindStringSubmatch(cleaned); match != nil {
		month, _ := strconv.Atoi(match[1])
		day, _ := strconv.Atoi(match[2])
		year, _ := strconv.Atoi(match[3])
		cleaned = fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}
	return cleaned
}

// stripDigitCommas removes commas between digits. The replacement loops
// because matches overlap in runs like "1,234,567".
func stripDigitCommas(value string) string {
	for {
		next := digitCommaPattern.ReplaceAllString(value, "$1$2")
		if next == value {
			return next
		}
		value = next
	}
}
