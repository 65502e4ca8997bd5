package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TestSplitFile is the WTQ test split file name inside the data directory.
const TestSplitFile = "pristine-unseen-tables.tsv"

// SplitRecord is one row of the test split before table joining.
type SplitRecord struct {
	ID        string
	Question  string
	Answers   []string
	TableName string
}

// LoadTestSplit parses the WTQ test split TSV. The first line is a column
// header and is skipped; each remaining line is id, question, table name,
// and a pipe-separated answer list.
func LoadTestSplit(dataDir string) ([]SplitRecord, error) {
	path := filepath.Join(dataDir, TestSplitFile)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open test split: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	records := make([]SplitRecord, 0, 4096)
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\n")
		if first {
			first = false
			continue
		}
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			continue
		}
		records = append(records, SplitRecord{
			ID:        fields[0],
			Question:  fields[1],
			TableName: fields[2],
			Answers:   strings.Split(fields[3], "|"),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read test split: %w", err)
	}
	return records, nil
}
