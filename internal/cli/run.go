package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"wtqbench/internal/config"
	"wtqbench/internal/dataset"
	"wtqbench/internal/report"
	"wtqbench/internal/runner"
	"wtqbench/internal/ui/live"
)

// runAndWrite is a test seam for run execution.
var runAndWrite = runner.RunAndWrite

// startLiveUI is a test seam for launching the live UI.
var startLiveUI = func(stdout io.Writer, opts live.Options) liveController {
	return live.Start(stdout, opts)
}

// liveController is the slice of live.Controller the run command needs.
type liveController interface {
	runner.RunObserver
	Close()
	Wait()
}

// runRun builds the handler for the run command.
func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		specPath := fs.String("spec", "", "Path to config file (default: search for .wtqbench/config.yml)")
		outputDir := fs.String("output-dir", "", "Override output directory")
		limit := fs.Int("limit", 0, "Evaluate at most n examples per task")
		uiMode := fs.String("ui", "auto", "UI mode: auto|live|plain")
		verbose := fs.Bool("verbose", false, "Verbose progress logging")
		logPath := fs.String("log", "", "Write progress logs to a file")
		noColor := fs.Bool("no-color", false, "Disable ANSI colors in the live UI")
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

		tasks, err := config.OrderedTasks(cfg, fs.Args())
		if err != nil {
			fmt.Fprintf(stderr, "Invalid task selection: %v\n", err)
			return ExitUsage
		}

		root := config.RootFromConfigPath(resolvedSpec)
		dataDir := resolveUnderRoot(root, cfg.Dataset.DataDir)
		if dataDir == "" {
			cacheDir := resolveUnderRoot(root, cfg.Dataset.CacheDir)
			dataDir, err = ensureDataset(context.Background(), nil, cacheDir)
			if err != nil {
				fmt.Fprintf(stderr, "Dataset fetch failed: %v\n", err)
				return ExitError
			}
		}
		cfg.Dataset.DataDir = dataDir

		examples, err := dataset.LoadExamples(dataDir, *limit)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load examples: %v\n", err)
			return ExitError
		}

		resolvedOutput := strings.TrimSpace(*outputDir)
		if resolvedOutput == "" {
			resolvedOutput = resolveUnderRoot(root, cfg.Output.Dir)
		}
		cfg.Output.Dir = resolvedOutput

		decision, err := resolveUIMode(*uiMode, *verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		opts := runner.Options{Limit: *limit}
		var controller liveController
		if decision.useLive {
			controller = startLiveUI(stdout, live.Options{NoColor: *noColor})
			opts.Observer = controller
		} else {
			opts.LogWriter = stdout
		}
		if path := strings.TrimSpace(*logPath); path != "" {
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					fmt.Fprintf(stderr, "Failed to create log directory: %v\n", err)
					return ExitError
				}
			}
			file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to open log file: %v\n", err)
				return ExitError
			}
			defer func() { _ = file.Close() }()
			opts.LogWriter = file
		}

		results, paths, err := runAndWrite(context.Background(), cfg, tasks, examples, opts)
		if controller != nil {
			controller.Close()
			controller.Wait()
		}
		if err != nil {
			fmt.Fprintf(stderr, "Run failed: %v\n", err)
			return ExitError
		}

		fmt.Fprint(stdout, report.Summary(results))
		fmt.Fprintf(stdout, "Results: %s\n", paths.ResultsPath())
		fmt.Fprintf(stdout, "Predictions: %s\n", paths.PredictionsJSONLPath())
		return ExitOK
	}
}
