package theme

import (
	"encoding/json"
	"io"
	"io/fs"
	"os"

	"github.com/pkg/errors"
)

// paletteFile is the on-disk palette layout:
//
//	{"colors": {"primary": "#112233", "ultra_marine": "#18f"}}
type paletteFile struct {
	Colors map[string]string `json:"colors"`
}

// Load reads a JSON palette file from disk. A file with an empty or missing
// colors table yields the default palette.
func Load(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return Palette{}, errors.Wrap(err, "opening palette file")
	}
	defer f.Close()
	return decodePalette(f)
}

// LoadFS is Load over an fs.FS, for palettes embedded next to the assets.
func LoadFS(fsys fs.FS, name string) (Palette, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return Palette{}, errors.Wrap(err, "opening palette file")
	}
	defer f.Close()
	return decodePalette(f)
}

func decodePalette(r io.Reader) (Palette, error) {
	var cfg paletteFile
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return Palette{}, errors.Wrap(err, "decoding palette file")
	}
	if len(cfg.Colors) == 0 {
		return Default(), nil
	}
	return ParsePalette(cfg.Colors)
}
