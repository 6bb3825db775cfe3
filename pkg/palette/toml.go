package palette

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depthplot/pkg/errors"
	"github.com/matzehuels/depthplot/pkg/scene"
)

// file is the on-disk palette format:
//
//	inherit = true            # start from Default()
//
//	[styles]
//	"Baroque" = "#336699"
//	"Art Nouveau" = "#7f9f3f"
type file struct {
	Inherit bool              `toml:"inherit"`
	Styles  map[string]string `toml:"styles"`
}

// Decode reads a TOML palette from r.
func Decode(r io.Reader) (Table, error) {
	var f file
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeInvalidPalette, err, "decode palette")
	}
	if len(f.Styles) == 0 && !f.Inherit {
		return Table{}, errors.New(errors.ErrCodeInvalidPalette, "palette defines no styles")
	}

	colors := make(map[string]scene.Color, len(f.Styles))
	for name, hex := range f.Styles {
		c, err := scene.ParseColor(hex)
		if err != nil {
			return Table{}, errors.Wrap(errors.ErrCodeInvalidPalette, err, "style %q", name)
		}
		colors[name] = c
	}

	if f.Inherit {
		return Default().With(colors)
	}
	return New(colors)
}

// Load reads a TOML palette file.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "palette %s", path)
		}
		return Table{}, errors.Wrap(errors.ErrCodeInvalidPalette, err, "open palette %s", path)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeInvalidPalette, err, "palette %s", path)
	}
	return t, nil
}
