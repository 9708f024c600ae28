package svgtint

import (
	"bytes"

	"github.com/khoshbin/icontint/theme"
)

// Transpile parses the svg source, substitutes its color class markers
// against the palette, and serializes the document back to bytes.
// A malformed source fails as a whole: the returned slice is nil, never
// a truncated document.
func Transpile(src []byte, colors theme.Palette) ([]byte, error) {
	return ClassRewriter{Colors: colors}.Transpile(src)
}

// Transpile runs the parse, rewrite, serialize pipeline with the
// rewriter's palette and logger.
func (rw ClassRewriter) Transpile(src []byte) ([]byte, error) {
	doc, err := Parse(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	if err := rw.Rewrite(doc); err != nil {
		return nil, err
	}
	return doc.Serialize(), nil
}
