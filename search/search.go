// Package search wires input iteration, event streaming, path tracking,
// and match rendering into the yamlgrep driver.
package search

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"go.jacobcolvin.com/yamlgrep/event"
	"go.jacobcolvin.com/yamlgrep/match"
	"go.jacobcolvin.com/yamlgrep/tracker"
)

// Sentinel errors returned by the searcher.
var (
	// ErrReadInput indicates an input file or stream could not be read.
	ErrReadInput = errors.New("read input")
	// ErrInvalidOption indicates a conflicting flag combination.
	ErrInvalidOption = errors.New("invalid option")
	// ErrWriteOutput indicates a match line could not be written.
	ErrWriteOutput = errors.New("write output")
)

// StdinLabel is the display name used for standard input.
const StdinLabel = "stdin"

// Config holds CLI flag values for the searcher.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewSearcher] to create a [Searcher].
type Config struct {
	IgnoreCase bool
	SearchPath bool
}

// NewConfig returns a new [Config] with zero-value fields.
func NewConfig() *Config {
	return &Config{}
}

// RegisterFlags adds search flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&c.IgnoreCase, "ignore-case", "i", false,
		"match leaf values ignoring case")
	flags.BoolVarP(&c.SearchPath, "search-path", "p", false,
		"match the dotted key path instead of leaf values")
}

// Discipline returns the matching discipline selected by the flags.
func (c *Config) Discipline() (match.Discipline, error) {
	switch {
	case c.IgnoreCase && c.SearchPath:
		return 0, fmt.Errorf("%w: --ignore-case and --search-path are mutually exclusive",
			ErrInvalidOption)
	case c.IgnoreCase:
		return match.DisciplineIgnoreCase, nil
	case c.SearchPath:
		return match.DisciplinePath, nil
	}

	return match.DisciplineExact, nil
}

// NewSearcher creates a [Searcher] for pattern using the configured
// discipline, writing match lines to out.
func (c *Config) NewSearcher(pattern string, out io.Writer, opts ...Option) (*Searcher, error) {
	discipline, err := c.Discipline()
	if err != nil {
		return nil, err
	}

	return NewSearcher(match.New(pattern, discipline), out, opts...), nil
}

// Searcher scans YAML inputs and writes one line per matching leaf.
//
// Inputs are processed strictly sequentially, one fully parsed document at
// a time. A structural error aborts the current input; output already
// written for prior inputs is preserved.
type Searcher struct {
	matcher *match.Matcher
	out     io.Writer
	logger  *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets the logger passed through to the path tracker.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		s.logger = logger
	}
}

// NewSearcher creates a Searcher rendering leaves through matcher.
func NewSearcher(matcher *match.Matcher, out io.Writer, opts ...Option) *Searcher {
	s := &Searcher{
		matcher: matcher,
		out:     out,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run scans every named file in order, or stdin when files is empty. The
// first error aborts the run.
func (s *Searcher) Run(files []string) error {
	if len(files) == 0 {
		return s.Reader(os.Stdin, StdinLabel)
	}

	for _, name := range files {
		err := s.File(name)
		if err != nil {
			return err
		}
	}

	return nil
}

// File scans a single file.
func (s *Searcher) File(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	return s.scan(data, name)
}

// Reader scans r, using label in diagnostics and debug output.
func (s *Searcher) Reader(r io.Reader, label string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReadInput, label, err)
	}

	return s.scan(data, label)
}

// scan streams data's parse events through a fresh tracker and writes
// rendered matches.
func (s *Searcher) scan(data []byte, label string) error {
	t := tracker.New(label, func(path []string, value string, pos event.Position) error {
		line, ok := s.matcher.Render(path, value, pos.Line)
		if !ok {
			return nil
		}

		_, err := fmt.Fprintln(s.out, line)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

		return nil
	}, tracker.WithLogger(s.logger))

	return event.Stream(data, t.Handle)
}

// SplitArgs separates pattern words from input files: leading arguments
// that do not name an existing file are joined with single spaces to form
// the search pattern, and the remaining arguments are input files.
func SplitArgs(args []string) (string, []string) {
	i := 0
	for i < len(args) {
		_, err := os.Stat(args[i])
		if err == nil {
			break
		}

		i++
	}

	return strings.Join(args[:i], " "), args[i:]
}
