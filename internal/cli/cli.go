package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  wtqbench <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"wtqbench <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .wtqbench/config.yml", []string{
		"wtqbench init [--spec <path>]",
	}, runInit),
	command("validate", "Validate the config file", []string{
		"wtqbench validate [--spec <path>]",
	}, runValidate),
	command("fetch", "Download and extract the dataset", []string{
		"wtqbench fetch [--spec <path>]",
	}, runFetch),
	command("run", "Execute benchmark tasks", []string{
		"wtqbench run [task-id]... [--limit <n>] [--ui auto|live|plain]",
	}, runRun),
	command("score", "Re-score a predictions file", []string{
		"wtqbench score <predictions.jsonl>",
	}, runScore),
	command("report", "Generate a run report", []string{
		"wtqbench report [--run <run-id>] [--all] [--output <path>]",
	}, runReport),
	command("ingest", "Ingest run results into a DuckDB warehouse", []string{
		"wtqbench ingest [--run <run-id>] [--db <path>]",
	}, runIngest),
	command("runs", "List ingested runs from the warehouse", []string{
		"wtqbench runs [--db <path>] [--run <run-id>] [--limit <n>]",
	}, runRuns),
}
