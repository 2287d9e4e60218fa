package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/cmd/memctl/logger"
	"github.com/joshuapare/memkit/mem/alloc"
	"github.com/joshuapare/memkit/pkg/command"
)

// defaultUnits is the region size used when --size is not given.
const defaultUnits = 10

var (
	// Global flags
	verbose   bool
	quiet     bool
	jsonOut   bool
	noColor   bool
	units     int
	strict    bool
	keepBytes bool
	debugLog  bool
	logDir    string
)

var rootCmd = &cobra.Command{
	Use:   "memctl",
	Short: "Drive a simulated first-fit memory allocator",
	Long: `memctl drives a simulated memory region of fixed-size units.
It allocates with first-fit, frees by address, and compacts the region when
free space is too fragmented to satisfy a request.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.Options{
			Enabled: debugLog,
			LogDir:  logDir,
			Level:   slog.LevelDebug,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		IntVarP(&units, "size", "n", defaultUnits, "Number of units in the memory region")
	rootCmd.PersistentFlags().
		BoolVar(&strict, "strict", false, "Reject double frees and mismatched free sizes")
	rootCmd.PersistentFlags().
		BoolVar(&keepBytes, "keep-bytes", false, "Compaction moves occupancy only, not contents")
	rootCmd.PersistentFlags().
		BoolVarP(&debugLog, "debug", "d", false, "Enable debug logging to ~/.memctl/logs/")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Directory for debug logs")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// newSession builds an allocator from the global flags.
func newSession(size int) (*command.Session, error) {
	fa, err := alloc.NewFirstFit(size, &alloc.Options{
		Logger:           logger.L,
		TrackSizes:       strict,
		KeepBytesInPlace: keepBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create region: %w", err)
	}
	logger.Info("region created", "units", size, "strict", strict, "keep_bytes", keepBytes)
	return command.NewSession(fa), nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
