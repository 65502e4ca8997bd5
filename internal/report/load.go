package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"wtqbench/internal/runner"
)

func LoadResults(path string) (runner.Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runner.Results{}, err
	}
	var results runner.Results
	if err := json.Unmarshal(data, &results); err != nil {
		return runner.Results{}, err
	}
	return results, nil
}

// ResolveRun loads a run from the output directory. An empty ref resolves
// to the latest run; otherwise the ref is a run ID.
func ResolveRun(outputDir, ref string) (runner.Results, string, error) {
	ref = strings.TrimSpace(ref)
	var runDir string
	if ref == "" {
		latest, err := findLatestRunDir(outputDir)
		if err != nil {
			return runner.Results{}, "", err
		}
		runDir = latest
	} else {
		runDir = filepath.Join(outputDir, ref)
		if info, err := os.Stat(runDir); err != nil || !info.IsDir() {
			return runner.Results{}, "", fmt.Errorf("run %s not found in %s", ref, outputDir)
		}
	}
	results, err := LoadResults(filepath.Join(runDir, "results.json"))
	return results, runDir, err
}

// LoadRuns loads every run under the output directory, oldest first.
// Directories without a readable results.json are skipped.
func LoadRuns(outputDir string) ([]runner.Results, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	runs := make([]runner.Results, 0, len(names))
	for _, name := range names {
		results, err := LoadResults(filepath.Join(outputDir, name, "results.json"))
		if err != nil {
			continue
		}
		runs = append(runs, results)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no runs found in %s", outputDir)
	}
	return runs, nil
}

// findLatestRunDir picks the lexically greatest run directory; run IDs sort
// by timestamp.
func findLatestRunDir(outputDir string) (string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return "", err
	}
	runIDs := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			runIDs = append(runIDs, entry.Name())
		}
	}
	if len(runIDs) == 0 {
		return "", fmt.Errorf("no runs found in %s", outputDir)
	}
	sort.Strings(runIDs)
	return filepath.Join(outputDir, runIDs[len(runIDs)-1]), nil
}
