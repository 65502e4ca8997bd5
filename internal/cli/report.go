package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"wtqbench/internal/config"
	"wtqbench/internal/report"
	"wtqbench/internal/runner"
)

var buildReportHTML = report.BuildReportHTML

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		specPath := fs.String("spec", "", "Path to config file (default: search for .wtqbench/config.yml)")
		inputDir := fs.String("input", "", "Directory containing runs (default: config output dir)")
		runRef := fs.String("run", "", "Run ID (default: latest)")
		allRuns := fs.Bool("all", false, "Include every run in the HTML report")
		outputPath := fs.String("output", "", "Report output path")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		outputDir := *inputDir
		if outputDir == "" {
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
			outputDir = resolveUnderRoot(root, cfg.Output.Dir)
		}

		selected, _, err := report.ResolveRun(outputDir, *runRef)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load run: %v\n", err)
			return ExitError
		}

		runs := []runner.Results{selected}
		if *allRuns {
			runs, err = report.LoadRuns(outputDir)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load runs: %v\n", err)
				return ExitError
			}
		}

		html := buildReportHTML(runs)
		reportPath := *outputPath
		if reportPath == "" {
			reportPath = filepath.Join(outputDir, "report.html")
		}
		if err := os.WriteFile(reportPath, []byte(html), 0o644); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}

		fmt.Fprint(stdout, report.Summary(selected))
		fmt.Fprintf(stdout, "Report written to %s\n", reportPath)
		return ExitOK
	}
}
