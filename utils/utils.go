// Package utils provides small helpers shared across the icon pipeline:
// identifier case conversion, duration formatting and generic numeric
// functions.
package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// SnakeToCamel converts a snake_case identifier to its camelCase form.
// Runs of underscores collapse, leading and trailing underscores are dropped,
// and input without underscores is returned unchanged.
func SnakeToCamel(s string) string {
	if !strings.ContainsRune(s, '_') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	upper, started := false, false
	for _, r := range s {
		if r == '_' {
			upper = started
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
		started = true
	}
	return b.String()
}

// CapitalizeFirst upper-cases the first rune of s, leaving the rest untouched.
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// FormatTime formats the elapsed duration in a human readable way,
// in milliseconds below one second and in seconds above.
func FormatTime(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
