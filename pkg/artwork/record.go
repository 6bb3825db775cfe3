// Package artwork defines the input records of a depth plot.
//
// A [Record] is owned by the caller and treated as read-only by every other
// package. Only Year, Style and Range drive the layout; the remaining fields
// are carried through to exports and lookups.
package artwork

import (
	"math"
	"strings"

	"github.com/matzehuels/depthplot/pkg/errors"
)

// StyleSeparator splits a style string into its canonical name and qualifiers.
const StyleSeparator = ", "

// Record is a single artwork.
type Record struct {
	ID     string  `json:"id,omitempty" yaml:"id,omitempty"`
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`
	Artist string  `json:"artist,omitempty" yaml:"artist,omitempty"`
	Image  string  `json:"image,omitempty" yaml:"image,omitempty"`
	Year   int     `json:"year" yaml:"year"`
	Style  string  `json:"style" yaml:"style"`
	Range  float64 `json:"range" yaml:"range"`
}

// CanonicalStyle returns the part of Style before the first ", ".
// "Dutch Golden Age, Painting" and "Dutch Golden Age" both yield
// "Dutch Golden Age".
func (r Record) CanonicalStyle() string {
	return CanonicalStyle(r.Style)
}

// CanonicalStyle returns the part of style before the first ", ".
func CanonicalStyle(style string) string {
	if i := strings.Index(style, StyleSeparator); i >= 0 {
		return style[:i]
	}
	return style
}

// Validate reports records the layout cannot place at all: a range that is
// NaN or infinite. Out-of-window years and unknown styles, including an empty
// one, are not errors; the layout skips them.
func (r Record) Validate() error {
	if math.IsNaN(r.Range) || math.IsInf(r.Range, 0) {
		return errors.New(errors.ErrCodeInvalidRecord, "%s: range %v is not a finite number", r.describe(), r.Range)
	}
	return nil
}

// ValidateAll validates records in order and returns the first failure,
// annotated with its index.
func ValidateAll(records []Record) error {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRecord, err, "record %d", i)
		}
	}
	return nil
}

func (r Record) describe() string {
	switch {
	case r.ID != "":
		return "artwork " + r.ID
	case r.Title != "":
		return "artwork " + r.Title
	default:
		return "artwork"
	}
}
