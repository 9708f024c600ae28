package svgtint

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/khoshbin/icontint/theme"
)

const (
	markerIcon = `<?xml version="1.0" encoding="UTF-8"?><svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path class="color-primary-fill" d="M0 0h24v24H0z"/></svg>`

	strokeIcon = `<?xml version="1.0" encoding="UTF-8"?><svg xmlns="http://www.w3.org/2000/svg"><path class="icon color-accent-stroke" stroke="#000000" d="M2 2L22 22"/></svg>`

	nestedIcon = `<?xml version="1.0" encoding="UTF-8"?><svg xmlns="http://www.w3.org/2000/svg"><g class="color-primary-fill color-accent-stroke"><circle class="toolbar color-dark-fill" cx="4" cy="4" r="2" fill="#ffffff"/></g></svg>`

	unknownIcon = `<?xml version="1.0" encoding="UTF-8"?><svg xmlns="http://www.w3.org/2000/svg"><path class="color-ultramarine-fill" d="M0 0h4v4H0z"/></svg>`

	styleVariantIcon = `<?xml version="1.0" encoding="UTF-8"?><svg xmlns="http://www.w3.org/2000/svg"><path class="color-primary-style-fill" d="M0 0h4v4H0z"/></svg>`

	passthroughIcon = `<?xml version="1.0" encoding="UTF-8"?>
<!-- generated -->
<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24">
  <rect x="2" y="2" width="20" height="20" fill="#ff0000"/>
</svg>`
)

func transpileFixture(t *testing.T, src string) string {
	t.Helper()
	out, err := Transpile([]byte(src), theme.Default())
	if err != nil {
		t.Fatalf("can't transpile icon: %s", err)
	}
	return string(out)
}

func TestTranspileMarkerFill(t *testing.T) {
	out := transpileFixture(t, markerIcon)
	want := `<?xml version="1.0" encoding="UTF-8"?><svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg"><path fill="#fe5e00" d="M0 0h24v24H0z"></path></svg>`
	if out != want {
		t.Fatalf("wrong output:\ngot  %s\nwant %s", out, want)
	}
}

func TestTranspileStrokeReplaced(t *testing.T) {
	out := transpileFixture(t, strokeIcon)
	if got := strings.Count(out, "stroke="); got != 1 {
		t.Fatalf("expected a single stroke attribute, got %d in %s", got, out)
	}
	if !strings.Contains(out, `stroke="#259dab"`) {
		t.Errorf("stroke not substituted: %s", out)
	}
	if strings.Contains(out, "#000000") {
		t.Errorf("original stroke still present: %s", out)
	}
	if !strings.Contains(out, `class="icon"`) {
		t.Errorf("unrelated class token lost: %s", out)
	}
}

func TestTranspileNestedMarkers(t *testing.T) {
	out := transpileFixture(t, nestedIcon)
	want := `<?xml version="1.0" encoding="UTF-8"?><svg xmlns="http://www.w3.org/2000/svg"><g fill="#fe5e00" stroke="#259dab"><circle fill="#212121" class="toolbar" cx="4" cy="4" r="2"></circle></g></svg>`
	if out != want {
		t.Fatalf("wrong output:\ngot  %s\nwant %s", out, want)
	}
}

func TestTranspileUnknownColor(t *testing.T) {
	var logs bytes.Buffer
	rw := ClassRewriter{Colors: theme.Default(), Log: log.New(&logs, "", 0)}
	out, err := rw.Transpile([]byte(unknownIcon))
	if err != nil {
		t.Fatalf("can't transpile icon: %s", err)
	}
	if !strings.Contains(string(out), `class="color-ultramarine-fill"`) {
		t.Errorf("unresolved marker should stay in place: %s", out)
	}
	if strings.Contains(string(out), "fill=") {
		t.Errorf("no attribute should be written for an unknown color: %s", out)
	}
	if !strings.Contains(logs.String(), `"ultramarine"`) {
		t.Errorf("missing warning for unknown color, logs: %q", logs.String())
	}
}

func TestTranspileStyleVariantUntouched(t *testing.T) {
	var logs bytes.Buffer
	rw := ClassRewriter{Colors: theme.Default(), Log: log.New(&logs, "", 0)}
	out, err := rw.Transpile([]byte(styleVariantIcon))
	if err != nil {
		t.Fatalf("can't transpile icon: %s", err)
	}
	if !strings.Contains(string(out), `class="color-primary-style-fill"`) {
		t.Errorf("style variant marker should pass through: %s", out)
	}
	if logs.Len() != 0 {
		t.Errorf("style variant markers are not warnings, logs: %q", logs.String())
	}
}

func TestStyleRewriterNotImplemented(t *testing.T) {
	doc, err := Parse(strings.NewReader(markerIcon))
	if err != nil {
		t.Fatalf("can't parse icon: %s", err)
	}
	if err := (StyleRewriter{Colors: theme.Default()}).Rewrite(doc); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}

func TestTranspilePassthrough(t *testing.T) {
	out := transpileFixture(t, passthroughIcon)
	if strings.Contains(out, "generated") {
		t.Errorf("comments should be dropped: %s", out)
	}
	if !strings.Contains(out, "\n  <rect") {
		t.Errorf("inter element whitespace should survive: %s", out)
	}
	if got := strings.Count(out, "fill="); got != 1 {
		t.Errorf("expected a single fill attribute, got %d in %s", got, out)
	}

	// a rewritten document is a fixed point of the pipeline
	again := transpileFixture(t, out)
	if again != out {
		t.Fatalf("transpile is not idempotent:\nfirst  %s\nsecond %s", out, again)
	}
}

func TestTranspileNamespaces(t *testing.T) {
	const in = `<?xml version="1.0" encoding="UTF-8"?><svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"><use xlink:href="#a"/></svg>`
	want := `<?xml version="1.0" encoding="UTF-8"?><svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"><use xlink:href="#a"></use></svg>`
	if out := transpileFixture(t, in); out != want {
		t.Fatalf("wrong output:\ngot  %s\nwant %s", out, want)
	}
}

func TestTranspileProlog(t *testing.T) {
	const in = `<?xml version='1.1' encoding='utf-8'?><svg xmlns="http://www.w3.org/2000/svg"/>`
	out := transpileFixture(t, in)
	if !strings.HasPrefix(out, `<?xml version="1.1" encoding="utf-8"?>`) {
		t.Fatalf("prolog not echoed: %s", out)
	}

	// documents without a declaration get the defaults
	out = transpileFixture(t, `<svg xmlns="http://www.w3.org/2000/svg"/>`)
	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("missing default prolog: %s", out)
	}
}

func TestTranspileMalformed(t *testing.T) {
	for _, src := range []string{
		"",
		"not xml at all",
		`<svg><path d="M0 0"</svg>`,
		`<svg>&nope;</svg>`,
		`<svg></rect>`,
		`<svg><g></svg>`,
		`<svg/><svg/>`,
	} {
		out, err := Transpile([]byte(src), theme.Default())
		if err == nil {
			t.Errorf("source %q should not transpile", src)
		}
		if out != nil {
			t.Errorf("source %q produced partial output %q", src, out)
		}
	}
}

func TestParseTree(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg"><title>Fish &amp; Chips</title><rect/></svg>`))
	if err != nil {
		t.Fatalf("can't parse icon: %s", err)
	}
	if doc.Root.Local != "svg" {
		t.Fatalf("unexpected root element %q", doc.Root.Local)
	}
	if len(doc.Root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(doc.Root.Children))
	}
	title := doc.Root.Children[0].(*Element)
	if len(title.Children) != 1 {
		t.Fatalf("expected merged character data, got %d nodes", len(title.Children))
	}
	if text := title.Children[0].(Text); text != "Fish & Chips" {
		t.Errorf("unexpected text %q", text)
	}

	out := string(doc.Serialize())
	if !strings.Contains(out, "Fish &amp; Chips") {
		t.Errorf("text not escaped on output: %s", out)
	}
}
