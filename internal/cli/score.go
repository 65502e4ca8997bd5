package cli

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"wtqbench/internal/score"
)

// predictionLine is one predictions.jsonl record.
type predictionLine struct {
	TaskID    string   `json:"task_id"`
	ID        string   `json:"id"`
	Question  string   `json:"question"`
	Gold      []string `json:"gold"`
	PredText  string   `json:"pred_text"`
	PredItems []string `json:"pred_items"`
	TableName string   `json:"table_name"`
}

// taskTally accumulates re-scored counts per task.
type taskTally struct {
	total   int
	correct int
}

// runScore builds the handler for the score command.
func runScore(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "Usage: wtqbench score <predictions.jsonl>")
			return ExitUsage
		}

		file, err := os.Open(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open predictions: %v\n", err)
			return ExitError
		}
		defer func() { _ = file.Close() }()

		tallies, err := rescorePredictions(file)
		if err != nil {
			fmt.Fprintf(stderr, "Scoring failed: %v\n", err)
			return ExitError
		}
		if len(tallies) == 0 {
			fmt.Fprintln(stderr, "No predictions found")
			return ExitError
		}

		taskIDs := make([]string, 0, len(tallies))
		for taskID := range tallies {
			taskIDs = append(taskIDs, taskID)
		}
		sort.Strings(taskIDs)
		for _, taskID := range taskIDs {
			tally := tallies[taskID]
			accuracy := float64(tally.correct) / float64(tally.total)
			fmt.Fprintf(stdout, "%s: denotation accuracy %.2f%% (%d/%d)\n",
				taskID, accuracy*100, tally.correct, tally.total)
		}
		return ExitOK
	}
}

// rescorePredictions recomputes denotation accuracy from raw answers. Stored
// pred_items are ignored so scoring changes apply retroactively.
func rescorePredictions(r io.Reader) (map[string]*taskTally, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	tallies := make(map[string]*taskTally)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record predictionLine
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		tally := tallies[record.TaskID]
		if tally == nil {
			tally = &taskTally{}
			tallies[record.TaskID] = tally
		}
		tally.total++
		predictions := score.SplitPrediction(record.PredText, len(record.Gold))
		if score.SetsMatch(record.Gold, predictions) {
			tally.correct++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tallies, nil
}
