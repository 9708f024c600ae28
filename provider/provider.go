// Serves rasterized icon assets by identifier: each request resolves a
// file inside an asset filesystem, substitutes theme colors into its
// class markers, and rasters the themed document into a pixel buffer.
package provider

import (
	"bytes"
	"image"
	"image/draw"
	"io/fs"
	"log"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/khoshbin/icontint/svgicon"
	"github.com/khoshbin/icontint/svgraster"
	"github.com/khoshbin/icontint/svgtint"
	"github.com/khoshbin/icontint/theme"
	"github.com/khoshbin/icontint/utils"
)

// DefaultMaxSize is the asset byte ceiling. Anything larger is rejected
// up front, before the transpiler ever sees it.
const DefaultMaxSize = 100 << 10

// Rejection categories of the pipeline. None of them is fatal: the
// Image surface collapses all of them to a nil buffer, they differ only
// in diagnostics.
var (
	ErrTooLarge     = errors.New("provider: asset above size ceiling")
	ErrUnreadable   = errors.New("provider: asset unreadable")
	ErrMalformed    = errors.New("provider: malformed markup")
	ErrEmptyOutput  = errors.New("provider: transpiler produced no output")
	ErrInvalidScene = errors.New("provider: invalid svg scene")
	ErrAllocation   = errors.New("provider: cannot allocate pixel buffer")
)

// Provider renders themed icons out of an asset filesystem. It is
// immutable after construction and safe for concurrent use: palette and
// configuration are read only, and every request owns its buffers.
type Provider struct {
	fsys    fs.FS
	colors  theme.Palette
	maxSize int64
	prefix  string
	log     *log.Logger
}

// Option adjusts a Provider at construction time.
type Option func(*Provider)

// WithMaxSize replaces the DefaultMaxSize byte ceiling.
func WithMaxSize(limit int64) Option {
	return func(p *Provider) { p.maxSize = limit }
}

// WithLogger routes the provider's diagnostics, for example into a
// test buffer. The default is the standard logger.
func WithLogger(logger *log.Logger) Option {
	return func(p *Provider) { p.log = logger }
}

// WithPathPrefix changes the directory prepended to identifiers. An
// empty prefix serves the filesystem root.
func WithPathPrefix(prefix string) Option {
	return func(p *Provider) { p.prefix = prefix }
}

// New builds a provider over the given assets. Identifiers resolve to
// "assets/images/<identifier>" unless WithPathPrefix says otherwise.
func New(fsys fs.FS, colors theme.Palette, opts ...Option) *Provider {
	p := &Provider{
		fsys:    fsys,
		colors:  colors,
		maxSize: DefaultMaxSize,
		prefix:  "assets/images",
		log:     log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Render resolves, transpiles and rasters one icon, reporting the exact
// rejection stage as a typed error. Every rejection is also logged.
func (p *Provider) Render(id string) (*image.RGBA, error) {
	start := time.Now()
	p.log.Printf("image %q requested", id)

	file := path.Join(p.prefix, id)
	if !fs.ValidPath(file) || (p.prefix != "" && !strings.HasPrefix(file, p.prefix+"/")) {
		p.log.Printf("warning: unable to open file %q", file)
		return nil, errors.Wrapf(ErrUnreadable, "%s", file)
	}
	info, err := fs.Stat(p.fsys, file)
	if err != nil {
		p.log.Printf("warning: unable to open file %q", file)
		return nil, errors.Wrapf(ErrUnreadable, "%s", file)
	}
	// the ceiling is checked on the stat size, so an oversized asset is
	// never read, let alone parsed
	if info.Size() > p.maxSize {
		p.log.Printf("warning: unable to open large file %q", file)
		return nil, errors.Wrapf(ErrTooLarge, "%s is %d bytes", file, info.Size())
	}
	src, err := fs.ReadFile(p.fsys, file)
	if err != nil {
		p.log.Printf("warning: unable to open file %q", file)
		return nil, errors.Wrapf(ErrUnreadable, "%s", file)
	}

	rw := svgtint.ClassRewriter{Colors: p.colors, Log: p.log}
	themed, err := rw.Transpile(src)
	if err != nil {
		p.log.Printf("warning: unable to parse file %q: %s", file, err)
		return nil, errors.Wrapf(ErrMalformed, "%s: %s", file, err)
	}
	if len(themed) == 0 {
		p.log.Printf("warning: empty output for file %q", file)
		return nil, errors.Wrapf(ErrEmptyOutput, "%s", file)
	}

	icon, err := svgicon.ReadIconStream(bytes.NewReader(themed), svgicon.IgnoreErrorMode)
	if err != nil {
		p.log.Printf("warning: invalid svg file %q: %s", file, err)
		return nil, errors.Wrapf(ErrInvalidScene, "%s: %s", file, err)
	}
	img, err := svgraster.RasterIcon(icon)
	if err != nil {
		if errors.Is(err, svgraster.ErrBufferSize) {
			width, height := int(icon.ViewBox.W), int(icon.ViewBox.H)
			p.log.Printf("warning: unable to create %dx%d image from %q", width, height, file)
			return nil, errors.Wrapf(ErrAllocation, "%s: %dx%d", file, width, height)
		}
		p.log.Printf("warning: invalid svg file %q: %s", file, err)
		return nil, errors.Wrapf(ErrInvalidScene, "%s: %s", file, err)
	}

	p.log.Printf("image %q loaded in %s", id, utils.FormatTime(time.Since(start)))
	return img, nil
}

// Image is the forgiving surface: any rejection collapses to a nil
// buffer, the reason only survives in the logs.
func (p *Provider) Image(id string) *image.RGBA {
	img, err := p.Render(id)
	if err != nil {
		return nil
	}
	return img
}

// RenderSized renders the icon and resamples it to the requested size
// with a Lanczos filter. A non positive width or height preserves the
// aspect ratio; both non positive keeps the natural size.
func (p *Provider) RenderSized(id string, width, height int) (*image.RGBA, error) {
	img, err := p.Render(id)
	if err != nil {
		return nil, err
	}
	width, height = utils.Max(width, 0), utils.Max(height, 0)
	if width == 0 && height == 0 {
		return img, nil
	}
	resized := imaging.Resize(img, width, height, imaging.Lanczos)
	out := image.NewRGBA(resized.Bounds())
	draw.Draw(out, out.Bounds(), resized, image.Point{}, draw.Src)
	return out, nil
}

// ImageSized is the forgiving variant of RenderSized.
func (p *Provider) ImageSized(id string, width, height int) *image.RGBA {
	img, err := p.RenderSized(id, width, height)
	if err != nil {
		return nil
	}
	return img
}
