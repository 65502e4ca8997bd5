package dataset

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"wtqbench/internal/table"
)

// ReadTableFile reads a normalized WTQ table from the dataset root (the
// directory containing csv/ and data/). Table names in the split use a
// .csv suffix but the normalized files are .tsv; the extension is rewritten
// before resolution. Ragged rows are kept as-is; consumers pad or truncate.
func ReadTableFile(rootDir, name string) (table.Table, error) {
	normalized := strings.ReplaceAll(name, ".csv", ".tsv")
	path, err := resolveTablePath(rootDir, normalized)
	if err != nil {
		return table.Table{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return table.Table{}, fmt.Errorf("open table: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	t := table.Table{Name: normalized}
	first := true
	for scanner.Scan() {
		cells := splitTableLine(scanner.Text())
		if first {
			t.Header = cells
			first = false
			continue
		}
		t.Rows = append(t.Rows, cells)
	}
	if err := scanner.Err(); err != nil {
		return table.Table{}, fmt.Errorf("read table %s: %w", normalized, err)
	}
	return t, nil
}

// splitTableLine tab-splits a line, trimming each cell and flattening any
// embedded newlines the source files escape into real cells.
func splitTableLine(line string) []string {
	fields := strings.Split(strings.TrimRight(line, "\n"), "\t")
	for i, field := range fields {
		fields[i] = strings.TrimSpace(strings.ReplaceAll(field, "\n", " "))
	}
	return fields
}

// resolveTablePath tries the known WTQ layouts before falling back to a
// walk under csv/. Names arrive either as "csv/204-csv/590.tsv" or bare.
func resolveTablePath(rootDir, name string) (string, error) {
	relUnderCSV := strings.TrimPrefix(name, "csv/")
	csvDir := filepath.Join(rootDir, "csv")

	candidates := []string{
		filepath.Join(csvDir, filepath.FromSlash(relUnderCSV)),
		filepath.Join(rootDir, filepath.FromSlash(name)),
		filepath.Join(rootDir, filepath.FromSlash(relUnderCSV)),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	base := filepath.Base(relUnderCSV)
	var found string
	walkErr := filepath.WalkDir(csvDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || found != "" || entry.IsDir() {
			return nil
		}
		if entry.Name() == base {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if walkErr == nil && found != "" {
		return found, nil
	}
	return "", fmt.Errorf("table %s not found under %s", name, rootDir)
}
