package theme

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"
)

func TestParseColor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Color
	}{
		{"#112233", Color{0x11, 0x22, 0x33, 0xff}},
		{"112233", Color{0x11, 0x22, 0x33, 0xff}},
		{"#18f", Color{0x11, 0x88, 0xff, 0xff}},
		{"#11223344", Color{0x11, 0x22, 0x33, 0x44}},
		{"  #ffffff ", Color{0xff, 0xff, 0xff, 0xff}},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): unexpected error %s", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseColor(%q): got=%+v want=%+v", c.in, got, c.want)
		}
	}
}

func TestParseColorInvalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "#", "#12", "#12345", "#gggggg", "red"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q): expected ErrInvalidColor, got %v", in, err)
		}
	}
}

func TestColorHex(t *testing.T) {
	t.Parallel()

	c := Color{0xfe, 0x5e, 0x00, 0xff}
	if got := c.Hex(); got != "#fe5e00" {
		t.Errorf("Hex: got=%q want=%q", got, "#fe5e00")
	}
	// alpha never leaks into the attribute value
	c = Color{0x11, 0x22, 0x33, 0x44}
	if got := c.Hex(); got != "#112233" {
		t.Errorf("Hex: got=%q want=%q", got, "#112233")
	}
}

func TestLookupNormalization(t *testing.T) {
	t.Parallel()

	p := NewPalette(map[string]Color{
		"ultra_marine": {0x11, 0x88, 0xff, 0xff},
	})
	for _, name := range []string{"ultra_marine", "ultraMarine", " ultraMarine "} {
		if _, ok := p.Lookup(name); !ok {
			t.Errorf("Lookup(%q): expected a hit", name)
		}
	}
	if _, ok := p.Lookup("marine"); ok {
		t.Error("Lookup(marine): expected a miss")
	}
}

func TestPaletteImmutable(t *testing.T) {
	t.Parallel()

	src := map[string]Color{"primary": {0x11, 0x22, 0x33, 0xff}}
	p := NewPalette(src)
	src["primary"] = Color{0xff, 0x00, 0x00, 0xff}
	src["injected"] = Color{}

	got, ok := p.Lookup("primary")
	if !ok || got != (Color{0x11, 0x22, 0x33, 0xff}) {
		t.Fatalf("palette shares state with its input map: got=%+v", got)
	}
	if _, ok := p.Lookup("injected"); ok {
		t.Fatal("palette shares state with its input map: injected key visible")
	}
}

func TestParsePalette(t *testing.T) {
	t.Parallel()

	p, err := ParsePalette(map[string]string{
		"primary":   "#112233",
		"secondary": "#18f",
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got, _ := p.Lookup("primary"); got.Hex() != "#112233" {
		t.Errorf("primary: got=%q want=%q", got.Hex(), "#112233")
	}

	if _, err := ParsePalette(map[string]string{"bad": "nope"}); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	p := NewPalette(map[string]Color{
		"zeta": {}, "alpha": {}, "mid": {},
	})
	want := []string{"alpha", "mid", "zeta"}
	if got := p.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names: got=%v want=%v", got, want)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "palette.json")
	data := []byte(`{"colors": {"primary": "#112233", "ultra_marine": "#18f"}}`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got, _ := p.Lookup("ultraMarine"); got.Hex() != "#1188ff" {
		t.Errorf("ultraMarine: got=%q want=%q", got.Hex(), "#1188ff")
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"themes/palette.json": &fstest.MapFile{
			Data: []byte(`{"colors": {"accent": "#259dab"}}`),
		},
		"themes/empty.json": &fstest.MapFile{
			Data: []byte(`{}`),
		},
	}

	p, err := LoadFS(fsys, "themes/palette.json")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if _, ok := p.Lookup("accent"); !ok {
		t.Error("expected accent in loaded palette")
	}

	// an empty colors table falls back to the defaults
	p, err = LoadFS(fsys, "themes/empty.json")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if p.Len() != Default().Len() {
		t.Errorf("empty palette file: got %d colors, want the %d defaults", p.Len(), Default().Len())
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	p := Default()
	if p.Len() == 0 {
		t.Fatal("default palette is empty")
	}
	if _, ok := p.Lookup("primary"); !ok {
		t.Error("default palette misses primary")
	}
}
