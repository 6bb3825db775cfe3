// Package palette maps canonical art styles to block colors.
//
// A [Table] is immutable once built: lookups never allocate and there is no
// setter. [Default] is the built-in 14-style table; [Decode] and [Load] read
// TOML palette files that replace or extend it.
package palette

import (
	"maps"
	"slices"

	"github.com/matzehuels/depthplot/pkg/errors"
	"github.com/matzehuels/depthplot/pkg/scene"
)

// Table is a read-only mapping from canonical style name to color.
// The zero value is an empty table.
type Table struct {
	colors map[string]scene.Color
}

// New builds a table from a style → color map. Style names are validated with
// [errors.ValidateStyleName]. The map is copied.
func New(colors map[string]scene.Color) (Table, error) {
	for name := range colors {
		if err := errors.ValidateStyleName(name); err != nil {
			return Table{}, err
		}
	}
	return Table{colors: maps.Clone(colors)}, nil
}

// Lookup returns the color for a canonical style. Matching is exact and
// case-sensitive; ok is false for unknown styles.
func (t Table) Lookup(style string) (c scene.Color, ok bool) {
	c, ok = t.colors[style]
	return c, ok
}

// Len returns the number of styles.
func (t Table) Len() int { return len(t.colors) }

// Styles returns the style names in sorted order.
func (t Table) Styles() []string {
	return slices.Sorted(maps.Keys(t.colors))
}

// With returns a copy of t with the given entries added or replaced.
// t itself is unchanged.
func (t Table) With(colors map[string]scene.Color) (Table, error) {
	merged := maps.Clone(t.colors)
	if merged == nil {
		merged = make(map[string]scene.Color, len(colors))
	}
	maps.Copy(merged, colors)
	return New(merged)
}

// defaultColors is copied into every Default() table and never handed out.
var defaultColors = map[string]scene.Color{
	"Renaissance":          0xd4a017,
	"Northern Renaissance": 0x8c6d1f,
	"Mannerism":            0x6b8e23,
	"Baroque":              0x5b2c6f,
	"Dutch Golden Age":     0xaf060f,
	"Rococo":               0xf4a7b9,
	"Neoclassicism":        0x4f81bd,
	"Romanticism":          0x2e8b57,
	"Realism":              0x8b4513,
	"Impressionism":        0x87ceeb,
	"Post-Impressionism":   0xffa500,
	"Expressionism":        0xdc143c,
	"Cubism":               0x708090,
	"Surrealism":           0x9932cc,
}

// Default returns the built-in 14-style table.
func Default() Table {
	return Table{colors: maps.Clone(defaultColors)}
}
