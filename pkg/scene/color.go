package scene

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/depthplot/pkg/errors"
)

// Color is a 24-bit RGB color stored as 0xRRGGBB.
type Color uint32

// R, G and B return the individual channels.
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// Hex returns the color as a lowercase CSS hex string ("#af060f").
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

// NRGBA returns the color with the given opacity in [0, 1] applied as alpha.
func (c Color) NRGBA(opacity float64) color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: alpha(opacity)}
}

func alpha(opacity float64) uint8 {
	switch {
	case opacity <= 0:
		return 0
	case opacity >= 1:
		return 0xff
	default:
		return uint8(opacity*0xff + 0.5)
	}
}

// ParseColor parses "#rrggbb", "rrggbb" or the short "#rgb" form.
func ParseColor(s string) (Color, error) {
	if err := errors.ValidateHexColor(s); err != nil {
		return 0, err
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse color %q", s)
	}
	return Color(v), nil
}

// MarshalText encodes the color as a hex string.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText decodes a hex string; used by the JSON, YAML and TOML decoders.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Material describes the surface of a mesh.
type Material struct {
	Color       Color   `json:"color"`
	Opacity     float64 `json:"opacity"`
	Transparent bool    `json:"transparent,omitempty"`
}
