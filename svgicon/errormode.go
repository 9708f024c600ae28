package svgicon

import (
	"fmt"
	"log"
)

// ErrorMode controls how the parser reacts to unsupported
// or invalid content found in an icon.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported or invalid content silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs unsupported or invalid content and keeps going.
	WarnErrorMode
	// StrictErrorMode aborts parsing on unsupported or invalid content.
	StrictErrorMode
)

// handleError reports a non fatal parsing problem according to
// the error mode of the cursor.
func (c *pathCursor) handleError(format string, args ...interface{}) error {
	switch c.errorMode {
	case StrictErrorMode:
		return fmt.Errorf(format, args...)
	case WarnErrorMode:
		log.Printf(format, args...)
	}
	return nil
}
