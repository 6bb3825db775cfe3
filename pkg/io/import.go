package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/depthplot/pkg/artwork"
	"github.com/matzehuels/depthplot/pkg/errors"
)

// document is the object form of an input file.
type document struct {
	Artworks []inputRecord `json:"artworks" yaml:"artworks"`
}

// inputRecord mirrors artwork.Record with a pointer year, so a missing
// "year" key can be told apart from year 0.
type inputRecord struct {
	ID     string  `json:"id" yaml:"id"`
	Title  string  `json:"title" yaml:"title"`
	Artist string  `json:"artist" yaml:"artist"`
	Image  string  `json:"image" yaml:"image"`
	Year   *int    `json:"year" yaml:"year"`
	Style  string  `json:"style" yaml:"style"`
	Range  float64 `json:"range" yaml:"range"`
}

// toRecords converts decoded input, failing on the first record without a
// year.
func toRecords(in []inputRecord) ([]artwork.Record, error) {
	records := make([]artwork.Record, len(in))
	for i, r := range in {
		if r.Year == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "record %d: missing year", i)
		}
		records[i] = artwork.Record{
			ID:     r.ID,
			Title:  r.Title,
			Artist: r.Artist,
			Image:  r.Image,
			Year:   *r.Year,
			Style:  r.Style,
			Range:  r.Range,
		}
	}
	return records, nil
}

// ReadJSON decodes artwork records from r.
//
// The input is either a bare array of records or an object with an
// "artworks" array:
//
//	[{"year": 1642, "style": "Dutch Golden Age, Painting", "range": 2}]
//	{"artworks": [{"year": 1642, "style": "Baroque", "range": 0}]}
//
// Type mismatches (a string year, say) and records without a year fail
// with errors.ErrCodeInvalidInput.
// Semantic checks are left to the layout builder. ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]artwork.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read")
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty input")
	}

	switch trimmed[0] {
	case '[':
		var in []inputRecord
		if err := json.Unmarshal(trimmed, &in); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode")
		}
		return toRecords(in)
	case '{':
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode")
		}
		return toRecords(doc.Artworks)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "expected a JSON array or object")
	}
}

// ReadYAML decodes artwork records from r. It accepts the same two shapes
// as [ReadJSON]. An empty document yields no records.
func ReadYAML(r io.Reader) ([]artwork.Record, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode")
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	switch node.Kind {
	case yaml.SequenceNode:
		var in []inputRecord
		if err := node.Decode(&in); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode")
		}
		return toRecords(in)
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode")
		}
		return toRecords(doc.Artworks)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "expected a YAML sequence or mapping")
	}
}

// Format identifies an input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat infers the input format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported input file %s (want .json, .yaml or .yml)", path)
	}
}

// Read decodes records from r in the given format.
func Read(r io.Reader, format Format) ([]artwork.Record, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q", format)
	}
}

// ImportFile reads the records stored at path, choosing the decoder from the
// file extension. A missing file is ErrCodeFileNotFound whatever its
// extension. Errors carry the path.
func ImportFile(path string) ([]artwork.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	records, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", path)
	}
	return records, nil
}
