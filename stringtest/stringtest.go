// Package stringtest provides helpers for constructing expected string
// output in tests.
package stringtest

import "strings"

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//	) // -> "line1\nline2"
func JoinLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// Lines joins multiple strings with LF line endings and appends a trailing
// newline, matching output written line-by-line with [fmt.Fprintln].
func Lines(ss ...string) string {
	if len(ss) == 0 {
		return ""
	}

	return JoinLF(ss...) + "\n"
}
