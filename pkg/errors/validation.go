package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxStyleNameLength bounds palette keys read from user files.
const maxStyleNameLength = 128

// ValidateStyleName validates a canonical style name used as a palette key.
//
// The rules are conservative:
//   - No empty names
//   - No control characters
//   - No ", " sequence (it would never match a canonical style)
//   - Maximum length of 128 characters
func ValidateStyleName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidPalette, "style name cannot be empty")
	}

	if len(name) > maxStyleNameLength {
		return New(ErrCodeInvalidPalette, "style name too long (max %d characters)", maxStyleNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPalette, "style name contains invalid control characters")
		}
	}

	if strings.Contains(name, ", ") {
		return New(ErrCodeInvalidPalette, "style name %q contains the style separator \", \"", name)
	}

	return nil
}

// hexColorRegex matches #rgb and #rrggbb (the leading # is optional).
var hexColorRegex = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a CSS-style hex color string.
func ValidateHexColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q (want #rrggbb)", s)
	}
	return nil
}
