package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/depthplot/pkg/artwork"
)

// outputDocument is the object form written by the exporters.
type outputDocument struct {
	Artworks []artwork.Record `json:"artworks" yaml:"artworks"`
}

// WriteJSON encodes records as an {"artworks": [...]} document.
// The output can be re-imported with [ReadJSON].
func WriteJSON(records []artwork.Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outputDocument{Artworks: nonNil(records)}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes records as a YAML document with an artworks list.
func WriteYAML(records []artwork.Record, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(outputDocument{Artworks: nonNil(records)}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// ExportFile writes records to path, choosing the encoder from the file
// extension.
func ExportFile(records []artwork.Record, path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatYAML {
		return WriteYAML(records, f)
	}
	return WriteJSON(records, f)
}

func nonNil(records []artwork.Record) []artwork.Record {
	if records == nil {
		return []artwork.Record{}
	}
	return records
}
