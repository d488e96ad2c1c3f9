// Package match implements the pattern disciplines used to select matching
// leaves and render them as output lines.
//
// A [Matcher] holds an immutable search pattern and exactly one
// [Discipline]. For every leaf it either produces one "path:line: value"
// line, with the first matched span wrapped in the highlight style, or no
// output at all. Matching over a bounded string cannot fail; the empty
// pattern matches every leaf at offset zero.
package match

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Discipline selects how the pattern is applied to a leaf. The three
// disciplines are mutually exclusive and chosen once at startup.
type Discipline int

const (
	// DisciplineExact matches the leaf value case-sensitively.
	DisciplineExact Discipline = iota
	// DisciplineIgnoreCase matches the leaf value ignoring case.
	DisciplineIgnoreCase
	// DisciplinePath matches the dot-joined key path case-sensitively.
	DisciplinePath
)

// Matcher applies one discipline to completed leaves.
//
// Create instances with [New]. A Matcher is stateless per invocation and
// safe to reuse across documents.
type Matcher struct {
	pattern    string
	discipline Discipline
	highlight  *color.Color
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithHighlight overrides the style wrapped around matched spans.
func WithHighlight(c *color.Color) Option {
	return func(m *Matcher) {
		m.highlight = c
	}
}

// New creates a Matcher for pattern under the given discipline. The
// default highlight style is bold red.
func New(pattern string, discipline Discipline, opts ...Option) *Matcher {
	m := &Matcher{
		pattern:    pattern,
		discipline: discipline,
		highlight:  color.New(color.FgRed, color.Bold),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Render reports whether the leaf at path with the given value matches,
// and if so returns the output line "path:line: value" with the first
// matched span highlighted. line is 1-based.
func (m *Matcher) Render(path []string, value string, line int) (string, bool) {
	joined := strings.Join(path, ".")

	switch m.discipline {
	case DisciplinePath:
		i := strings.Index(joined, m.pattern)
		if i < 0 {
			return "", false
		}

		return fmt.Sprintf("%s:%d: %s", m.mark(joined, i, i+len(m.pattern)), line, value), true

	case DisciplineIgnoreCase:
		from, to := indexFold(value, m.pattern)
		if from < 0 {
			return "", false
		}

		// The span is taken from the original value so the highlighted
		// text preserves its case.
		return fmt.Sprintf("%s:%d: %s", joined, line, m.mark(value, from, to)), true
	}

	i := strings.Index(value, m.pattern)
	if i < 0 {
		return "", false
	}

	return fmt.Sprintf("%s:%d: %s", joined, line, m.mark(value, i, i+len(m.pattern))), true
}

// mark wraps s[from:to] in the highlight style, leaving the rest of s
// intact.
func (m *Matcher) mark(s string, from, to int) string {
	return s[:from] + m.highlight.Sprint(s[from:to]) + s[to:]
}

// indexFold returns the byte offsets in s of the first case-insensitive
// occurrence of substr, or (-1, -1) when there is none. Both offsets
// point into s itself, so the matched span can be sliced out of the
// original string even when case folding changes rune widths.
func indexFold(s, substr string) (from, to int) {
	for i := 0; i <= len(s); i++ {
		if i < len(s) && !utf8.RuneStart(s[i]) {
			continue
		}

		end, ok := foldMatchAt(s, substr, i)
		if ok {
			return i, end
		}
	}

	return -1, -1
}

// foldMatchAt reports whether substr matches s at byte offset i under
// simple Unicode case folding, returning the end offset of the match
// within s.
func foldMatchAt(s, substr string, i int) (int, bool) {
	for _, pr := range substr {
		if i >= len(s) {
			return 0, false
		}

		sr, size := utf8.DecodeRuneInString(s[i:])
		if !foldEq(sr, pr) {
			return 0, false
		}

		i += size
	}

	return i, true
}

// foldEq reports whether two runes are equal under simple Unicode case
// folding, matching the semantics of [strings.EqualFold].
func foldEq(a, b rune) bool {
	if a == b {
		return true
	}

	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}

	return false
}
