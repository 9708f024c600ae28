package svgraster

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/khoshbin/icontint/svgicon"
)

const circleIcon = `<?xml version="1.0" encoding="UTF-8"?>
<svg viewBox="0 0 24 24"><circle cx="12" cy="12" r="10" fill="#259dab"/></svg>`

const rectIcon = `<?xml version="1.0" encoding="UTF-8"?>
<svg viewBox="0 0 24 24"><rect x="0" y="0" width="24" height="24" fill="#112233"/></svg>`

const gradientIcon = `<?xml version="1.0" encoding="UTF-8"?>
<svg viewBox="0 0 24 24">
	<defs>
		<linearGradient id="wash">
			<stop offset="0" stop-color="#ff0000"/>
			<stop offset="1" stop-color="#0000ff"/>
		</linearGradient>
	</defs>
	<rect x="0" y="0" width="24" height="24" fill="url(#wash)"/>
</svg>`

const strokeIcon = `<?xml version="1.0" encoding="UTF-8"?>
<svg viewBox="0 0 24 24"><line x1="0" y1="12" x2="24" y2="12" stroke="#ff0000" stroke-width="4"/></svg>`

func rasterFixture(t *testing.T, svg string) *image.RGBA {
	t.Helper()
	img, err := Rasterize([]byte(svg))
	if err != nil {
		t.Fatalf("can't raster image: %s", err)
	}
	return img
}

func TestRasterizeDimensions(t *testing.T) {
	for _, tc := range []struct {
		viewBox string
		w, h    int
	}{
		{"0 0 24 24", 24, 24},
		{"0 0 24.9 24.9", 24, 24}, // fractional sizes round down
		{"0 0 100 50", 100, 50},
		{"0 0 1 1", 1, 1},
	} {
		svg := `<svg viewBox="` + tc.viewBox + `"><rect width="1" height="1" fill="#000"/></svg>`
		img := rasterFixture(t, svg)
		bounds := img.Bounds()
		if bounds.Dx() != tc.w || bounds.Dy() != tc.h {
			t.Errorf("viewBox %q: expected %dx%d image, got %dx%d",
				tc.viewBox, tc.w, tc.h, bounds.Dx(), bounds.Dy())
		}
	}
}

func TestRasterizeTransparentBackground(t *testing.T) {
	img := rasterFixture(t, circleIcon)
	// the circle does not reach the corners, which must stay fully transparent
	for _, p := range [...]image.Point{{0, 0}, {23, 0}, {0, 23}, {23, 23}} {
		if c := img.RGBAAt(p.X, p.Y); c.A != 0 {
			t.Errorf("corner %v: expected fully transparent pixel, got alpha %d", p, c.A)
		}
	}
	if c := img.RGBAAt(12, 12); c.A != 0xff {
		t.Errorf("center: expected opaque pixel, got alpha %d", c.A)
	}
}

func TestRasterizePlainFill(t *testing.T) {
	img := rasterFixture(t, rectIcon)
	got := img.RGBAAt(12, 12)
	if got.R != 0x11 || got.G != 0x22 || got.B != 0x33 || got.A != 0xff {
		t.Errorf("expected center pixel #112233ff, got %v", got)
	}
}

func TestRasterizeGradientFill(t *testing.T) {
	img := rasterFixture(t, gradientIcon)
	left, right := img.RGBAAt(2, 12), img.RGBAAt(21, 12)
	if left.A != 0xff || right.A != 0xff {
		t.Fatalf("expected opaque gradient pixels, got alpha %d and %d", left.A, right.A)
	}
	if left.R <= right.R {
		t.Errorf("expected red to fade along x, got %d then %d", left.R, right.R)
	}
	if left.B >= right.B {
		t.Errorf("expected blue to grow along x, got %d then %d", left.B, right.B)
	}
}

func TestRasterizeStroke(t *testing.T) {
	img := rasterFixture(t, strokeIcon)
	got := img.RGBAAt(12, 12)
	if got.R != 0xff || got.A != 0xff {
		t.Errorf("expected a red stroked pixel on the line, got %v", got)
	}
	if c := img.RGBAAt(12, 2); c.A != 0 {
		t.Errorf("expected transparent pixel away from the line, got alpha %d", c.A)
	}
}

func TestRasterizeInvalidScenes(t *testing.T) {
	for _, tc := range []struct {
		svg  string
		want error
	}{
		{`<svg><rect width="1" height="1"/></svg>`, ErrInvalidViewBox},
		{`<svg viewBox="0 0 0 24"><rect width="1" height="1"/></svg>`, ErrInvalidViewBox},
		{`<svg viewBox="0 0 -5 24"><rect width="1" height="1"/></svg>`, ErrInvalidViewBox},
		{`<svg viewBox="0 0 0.5 0.5"><rect width="1" height="1"/></svg>`, ErrBufferSize},
	} {
		_, err := Rasterize([]byte(tc.svg))
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.svg, tc.want, err)
		}
	}
}

func TestRasterizeMalformed(t *testing.T) {
	for _, svg := range []string{
		"",
		"not xml at all",
		`<svg viewBox="0 0 24 24"><rect</svg>`,
	} {
		if _, err := Rasterize([]byte(svg)); err == nil {
			t.Errorf("%q: expected a parse error", svg)
		}
	}
}

func TestRasterIconSized(t *testing.T) {
	icon, err := svgicon.ReadIconStream(strings.NewReader(circleIcon), svgicon.IgnoreErrorMode)
	if err != nil {
		t.Fatalf("can't parse icon: %s", err)
	}
	img, err := RasterIconSized(icon, 48, 48)
	if err != nil {
		t.Fatalf("can't raster image: %s", err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
		t.Fatalf("expected a 48x48 image, got %dx%d", b.Dx(), b.Dy())
	}
	if c := img.RGBAAt(24, 24); c.A != 0xff {
		t.Errorf("center: expected opaque pixel after scaling, got alpha %d", c.A)
	}
	if c := img.RGBAAt(1, 1); c.A != 0 {
		t.Errorf("corner: expected transparent pixel after scaling, got alpha %d", c.A)
	}
}
