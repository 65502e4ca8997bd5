package dataset

import (
	"fmt"
	"path/filepath"
)

// LoadExamples joins test split records with their tables. A table that
// fails to load is recorded on the example instead of aborting the batch.
// A limit of 0 or less loads the whole split.
func LoadExamples(dataDir string, limit int) ([]Example, error) {
	records, err := LoadTestSplit(dataDir)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	// Table files live under the dataset root, the parent of data/.
	rootDir := filepath.Dir(filepath.Clean(dataDir))

	examples := make([]Example, 0, len(records))
	for _, record := range records {
		example := Example{
			ID:        record.ID,
			Question:  record.Question,
			Answers:   record.Answers,
			TableName: record.TableName,
		}
		t, err := ReadTableFile(rootDir, record.TableName)
		if err != nil {
			example.TableError = fmt.Sprintf("load table: %v", err)
		} else {
			example.Table = t
		}
		examples = append(examples, example)
	}
	return examples, nil
}
