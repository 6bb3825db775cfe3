package cache

import (
	"encoding/json"

	"github.com/matzehuels/depthplot/pkg/artwork"
)

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Width       float64 `json:"width,omitempty"`
	PaletteHash string  `json:"palette,omitempty"`
	Namespace   string  `json:"ns,omitempty"`
	Title       string  `json:"title,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact.
	ArtifactKey(recordsHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ArtifactKey(recordsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", recordsHash, opts)
}

// HashRecords returns a stable SHA-256 of records. Field order and values
// matter; two equal slices hash the same.
func HashRecords(records []artwork.Record) string {
	if records == nil {
		records = []artwork.Record{}
	}
	data, _ := json.Marshal(records)
	return Hash(data)
}
