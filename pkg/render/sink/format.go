package sink

import (
	"slices"
	"strings"

	"github.com/matzehuels/depthplot/pkg/errors"
)

// Format names an output artifact.
type Format string

const (
	FormatJSON     Format = "json"
	FormatSVG      Format = "svg"
	FormatHTML     Format = "html"
	FormatPNG      Format = "png"
	FormatDOT      Format = "dot"
	FormatGraphviz Format = "graphviz"
)

var formatInfo = map[Format]struct {
	ext         string
	contentType string
}{
	FormatJSON:     {".json", "application/json"},
	FormatSVG:      {".svg", "image/svg+xml"},
	FormatHTML:     {".html", "text/html; charset=utf-8"},
	FormatPNG:      {".png", "image/png"},
	FormatDOT:      {".dot", "text/vnd.graphviz"},
	FormatGraphviz: {".scene.svg", "image/svg+xml"},
}

// Formats returns every supported format, sorted.
func Formats() []Format {
	out := make([]Format, 0, len(formatInfo))
	for f := range formatInfo {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// ParseFormat validates a format name. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := formatInfo[f]; !ok {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (supported: %s)", s, strings.Join(formatNames(), ", "))
	}
	return f, nil
}

// ParseFormats parses a list of format names, dropping duplicates.
func ParseFormats(names []string) ([]Format, error) {
	var out []Format
	for _, n := range names {
		f, err := ParseFormat(n)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// Ext returns the file extension for f, including the leading dot.
func (f Format) Ext() string { return formatInfo[f].ext }

// ContentType returns the MIME type for f.
func (f Format) ContentType() string { return formatInfo[f].contentType }

func formatNames() []string {
	var names []string
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return names
}
