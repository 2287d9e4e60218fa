package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/cmd/memctl/logger"
	"github.com/joshuapare/memkit/pkg/command"
)

var keepGoing bool

func init() {
	cmd := newRunCmd()
	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "Continue after a failed command")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <command>...",
		Short: "Run a script of allocator commands",
		Long: `The run command executes allocator commands in order against a fresh
region and prints each result. Commands may be given as separate arguments or
joined with ';'.

Commands:
` + command.Usage + `

Example:
  memctl run "alloc 4" "alloc 3" "free +0 4" "alloc 5" status
  memctl run --size 16 "alloc 8; alloc 8; free +0 8; stats"
  memctl run --json "alloc 4; status"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(args)
		},
	}
	return cmd
}

// scriptReport is the --json output of a run.
type scriptReport struct {
	Units   int              `json:"units"`
	Base    string           `json:"base"`
	Results []command.Result `json:"results"`
	Map     string           `json:"map"`
	Failed  int              `json:"failed"`
}

func runScript(args []string) error {
	lines := command.Split(args...)
	if len(lines) == 0 {
		return fmt.Errorf("no commands given")
	}

	s, err := newSession(units)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Allocator().Close(); err != nil {
			logger.Warn("error closing region", "error", err)
		}
	}()

	printVerbose("Region: %d units at %s\n", units, s.Allocator().Base())

	report := scriptReport{
		Units: units,
		Base:  s.Allocator().Base().String(),
	}
	var firstErr error
	for _, line := range lines {
		res, err := s.Exec(line)
		report.Results = append(report.Results, res)
		if err != nil {
			report.Failed++
			logger.Warn("command failed", "line", line, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", line, err)
			}
		}
		if !jsonOut {
			writeResult(os.Stdout, line, res, err)
		}
		if err != nil && !keepGoing {
			break
		}
	}
	report.Map = command.Compress(s.Allocator().Status())

	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
	}
	return firstErr
}

// writeResult prints one command's outcome in text form.
func writeResult(w io.Writer, line string, res command.Result, err error) {
	if quiet && err == nil {
		return
	}
	if err != nil {
		fmt.Fprintf(w, "%-16s failed: %v\n", line, err)
		return
	}
	switch res.Command.Kind {
	case command.Alloc:
		fmt.Fprintf(w, "%-16s -> %s (offset %d)\n", line, res.Address, res.Offset)
	case command.Free:
		fmt.Fprintf(w, "%-16s -> freed offset %d\n", line, res.Offset)
	case command.Compact:
		fmt.Fprintf(w, "%-16s -> moved %d unit(s)\n", line, res.Moved)
	case command.Status:
		fmt.Fprintf(w, "%-16s -> %s\n", line, renderStatus(res.Status, !noColor))
	case command.Stats:
		fmt.Fprintf(w, "%s\n", line)
		writeStats(w, *res.Stats)
	}
}
