package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"wtqbench/internal/config"
	"wtqbench/internal/duckdb"
	"wtqbench/internal/report"
)

// defaultWarehouseFile is the DuckDB file under the config directory.
const defaultWarehouseFile = "warehouse.duckdb"

// runIngest builds the handler for the ingest command.
func runIngest(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		specPath := fs.String("spec", "", "Path to config file (default: search for .wtqbench/config.yml)")
		runRef := fs.String("run", "", "Run ID (default: latest)")
		dbPath := fs.String("db", "", "DuckDB database path (default: .wtqbench/warehouse.duckdb)")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		resolvedSpec, err := resolveSpecPath(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to locate config: %v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolvedSpec)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		root := config.RootFromConfigPath(resolvedSpec)
		outputDir := resolveUnderRoot(root, cfg.Output.Dir)

		results, runDir, err := report.ResolveRun(outputDir, *runRef)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load run: %v\n", err)
			return ExitError
		}

		warehousePath := *dbPath
		if warehousePath == "" {
			warehousePath = filepath.Join(config.ConfigDir(root), defaultWarehouseFile)
		}
		db, err := duckdb.Open(warehousePath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open warehouse: %v\n", err)
			return ExitError
		}
		defer func() { _ = db.Close() }()

		if err := duckdb.IngestResults(context.Background(), db, results); err != nil {
			fmt.Fprintf(stderr, "Ingest failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Ingested run %s from %s into %s\n", results.RunID, runDir, warehousePath)
		return ExitOK
	}
}
