package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"wtqbench/internal/config"
	"wtqbench/internal/dataset"
)

// ensureDataset is a test seam for dataset downloads.
var ensureDataset = dataset.Ensure

// runFetch builds the handler for the fetch command.
func runFetch(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		specPath := fs.String("spec", "", "Path to config file (default: search for .wtqbench/config.yml)")
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
		cacheDir := resolveUnderRoot(root, cfg.Dataset.CacheDir)
		dataDir, err := ensureDataset(context.Background(), nil, cacheDir)
		if err != nil {
			fmt.Fprintf(stderr, "Fetch failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Dataset ready at %s\n", dataDir)
		return ExitOK
	}
}
