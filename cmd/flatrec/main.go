// Command flatrec inspects and parses line-delimited legacy exports:
// it detects character encodings, prints decoded lines, and extracts
// typed records per a schema given on the command line.
//
// Logging: the base logger is created here and handed to the cli
// package; components scope it with their own attributes. There is no
// global slog configuration.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"flatrec/cmd/flatrec/cli"
)

var version = "dev"

func main() {
	verbose := false
	for _, a := range os.Args[1:] {
		if a == "-v" || a == "--verbose" {
			verbose = true
		}
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	rootCmd := &cobra.Command{
		Use:   "flatrec",
		Short: "Decode and parse line-delimited legacy exports",
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, or msgpack")

	rootCmd.AddCommand(
		cli.NewDetectCommand(logger),
		cli.NewLinesCommand(logger),
		cli.NewParseCommand(logger),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				cmd.Println(version)
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
