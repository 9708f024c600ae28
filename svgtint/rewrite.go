package svgtint

import (
	"log"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/khoshbin/icontint/theme"
)

// Markers are carried in class attributes, one token per substitution:
// color-<name>-fill and color-<name>-stroke.
var colorMarker = regexp.MustCompile(`^color-([^-]+)-(fill|stroke)$`)

// ErrNotImplemented is returned by the style rewriter.
var ErrNotImplemented = errors.New("svgtint: style substitution is not implemented")

// Rewriter is a color substitution strategy, applied to a parsed
// document in place.
type Rewriter interface {
	Rewrite(doc *Document) error
}

var (
	_ Rewriter = ClassRewriter{}
	_ Rewriter = StyleRewriter{}
)

// ClassRewriter substitutes color class markers with literal fill and
// stroke attributes. Colors are resolved against the palette; markers
// naming an unknown color are logged and left in place, so a theme
// gap never destroys information.
type ClassRewriter struct {
	Colors theme.Palette
	// Log receives the unknown color warnings. Nil falls back to the
	// standard logger.
	Log *log.Logger
}

// Rewrite applies every marker of the document tree in place. It
// never fails; the error satisfies Rewriter.
func (rw ClassRewriter) Rewrite(doc *Document) error {
	if doc.Root != nil {
		rw.rewriteElement(doc.Root)
	}
	return nil
}

func (rw ClassRewriter) rewriteElement(el *Element) {
	rw.RewriteElement(el)
	for _, child := range el.Children {
		if sub, ok := child.(*Element); ok {
			rw.rewriteElement(sub)
		}
	}
}

// RewriteElement processes the class attribute of a single element.
// A marker is consumed only by a successful substitution; everything
// else in the class list survives verbatim. Substituted attributes
// replace an unprefixed attribute of the same name and are placed in
// front of the remaining ones.
func (rw ClassRewriter) RewriteElement(el *Element) {
	class := el.attr("class")
	if class == "" {
		return
	}

	var (
		kept      []string
		rewritten []Attr
	)
	for _, token := range strings.Fields(class) {
		m := colorMarker.FindStringSubmatch(token)
		if m == nil {
			kept = append(kept, token)
			continue
		}
		c, ok := rw.Colors.Lookup(m[1])
		if !ok {
			rw.warnf("color name %q does not exist", m[1])
			kept = append(kept, token)
			continue
		}
		rewritten = append(rewritten, Attr{Local: m[2], Value: c.Hex()})
	}
	if len(rewritten) == 0 {
		return
	}

	for _, attr := range rewritten {
		el.removeAttr(attr.Local)
	}
	if len(kept) == 0 {
		el.removeAttr("class")
	} else {
		el.setAttr("class", strings.Join(kept, " "))
	}
	el.Attrs = append(rewritten, el.Attrs...)
}

func (rw ClassRewriter) warnf(format string, args ...interface{}) {
	if rw.Log != nil {
		rw.Log.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// StyleRewriter stands in for the style marker variant
// (color-<name>-style-fill, color-<name>-style-stroke).
type StyleRewriter struct {
	Colors theme.Palette
}

// Rewrite always fails with ErrNotImplemented: the markers are part of
// the grammar but their substitution into style attributes was never
// specified. ClassRewriter passes them through untouched.
func (StyleRewriter) Rewrite(*Document) error {
	return ErrNotImplemented
}
