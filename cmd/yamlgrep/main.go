// Command yamlgrep searches YAML documents for leaf scalar values or
// dotted key paths matching a pattern, printing one "path:line: value"
// line per match with the matched span highlighted.
//
// # Usage
//
//	yamlgrep [flags] <pattern>... [file...]
//
// Leading arguments that do not name an existing file are joined with
// spaces to form the search pattern; the remaining arguments are input
// files. With no files, input is read from stdin.
//
// # Flags
//
//	-i, --ignore-case   match leaf values ignoring case
//	-p, --search-path   match the dotted key path instead of leaf values
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/yamlgrep/log"
	"go.jacobcolvin.com/yamlgrep/profiler"
	"go.jacobcolvin.com/yamlgrep/search"
	"go.jacobcolvin.com/yamlgrep/version"
)

func main() {
	searchCfg := search.NewConfig()
	logCfg := log.NewConfig()
	prof := profiler.New()

	rootCmd := &cobra.Command{
		Use:   "yamlgrep [flags] <pattern>... [file...]",
		Short: "Search YAML documents by leaf value or key path",
		Long: `yamlgrep scans YAML documents and prints lines whose leaf scalar value,
or whose dotted key path, matches the search pattern. Leading arguments
that do not name an existing file form the pattern; the remaining
arguments are input files. With no files, input is read from stdin.`,
		Version:       version.Info(),
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(searchCfg, logCfg, &prof, args)
		},
	}

	searchCfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.Flags())
	prof.RegisterFlags(rootCmd.Flags())

	completionErr := logCfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	// With no arguments at all, print usage and abort.
	if len(os.Args) < 2 {
		_ = rootCmd.Usage()
		os.Exit(1)
	}

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *search.Config, logCfg *log.Config, prof *profiler.Profiler, args []string) error {
	handler, err := logCfg.NewHandler(os.Stderr)
	if err != nil {
		return err
	}

	logger := slog.New(handler)

	err = prof.Start()
	if err != nil {
		return err
	}
	defer func() {
		stopErr := prof.Stop()
		if stopErr != nil {
			logger.Warn("stopping profiles", slog.Any("error", stopErr))
		}
	}()

	// Highlighting is pointless when output is piped.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	pattern, files := search.SplitArgs(args)

	searcher, err := cfg.NewSearcher(pattern, os.Stdout, search.WithLogger(logger))
	if err != nil {
		return err
	}

	return searcher.Run(files)
}
