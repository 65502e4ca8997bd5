package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"wtqbench/internal/config"
	"wtqbench/internal/duckdb"
)

// runRuns builds the handler for the runs command.
func runRuns(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		specPath := fs.String("spec", "", "Path to config file (default: search for .wtqbench/config.yml)")
		dbPath := fs.String("db", "", "DuckDB database path (default: .wtqbench/warehouse.duckdb)")
		runRef := fs.String("run", "", "Show per-task accuracy for a run")
		limit := fs.Int("limit", 20, "Maximum runs to list")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		warehousePath := *dbPath
		if warehousePath == "" {
			resolvedSpec, err := resolveSpecPath(*specPath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to locate config: %v\n", err)
				return ExitError
			}
			root := config.RootFromConfigPath(resolvedSpec)
			warehousePath = filepath.Join(config.ConfigDir(root), defaultWarehouseFile)
		}

		db, err := duckdb.Open(warehousePath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open warehouse: %v\n", err)
			return ExitError
		}
		defer func() { _ = db.Close() }()

		ctx := context.Background()
		if *runRef != "" {
			rows, err := duckdb.TaskAccuracies(ctx, db, *runRef)
			if err != nil {
				fmt.Fprintf(stderr, "Query failed: %v\n", err)
				return ExitError
			}
			if len(rows) == 0 {
				fmt.Fprintf(stderr, "No tasks found for run %s\n", *runRef)
				return ExitError
			}
			for _, row := range rows {
				fmt.Fprintf(stdout, "%s  %s  %s  %.2f%% (%d/%d)\n",
					row.TaskID, row.TaskType, row.Model,
					row.DenotationAccuracy*100, row.ExamplesCorrect, row.ExamplesTotal)
			}
			return ExitOK
		}

		rows, err := duckdb.ListRuns(ctx, db, *limit)
		if err != nil {
			fmt.Fprintf(stderr, "Query failed: %v\n", err)
			return ExitError
		}
		if len(rows) == 0 {
			fmt.Fprintln(stderr, "No runs ingested yet")
			return ExitError
		}
		for _, row := range rows {
			fmt.Fprintf(stdout, "%s  %s  examples=%d  accuracy=%.2f%%  tokens=%d\n",
				row.RunID, row.StartedAt.UTC().Format("2006-01-02 15:04:05"),
				row.ExamplesTotal, row.Accuracy*100, row.TokensTotal)
		}
		return ExitOK
	}
}
