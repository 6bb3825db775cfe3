// Package pipeline provides the load → build → render pipeline for depthplot.
//
// The CLI and the HTTP server both go through this package so they share
// defaults, caching and validation.
//
// # Stages
//
//  1. Load: read artwork records from a JSON or YAML file
//  2. Build: lay the records out into a scene with [depth.New]
//  3. Render: turn the plot into artifacts (json, svg, html, png, dot, graphviz)
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	records, err := runner.Load(ctx, "artworks.json")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, records, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Builds use deterministic mesh ids by default: the same records always
// produce the same ids, so ids printed by one run can be looked up in the
// next and rendered artifacts can be cached.
package pipeline

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/depthplot/pkg/cache"
	"github.com/matzehuels/depthplot/pkg/depth"
	"github.com/matzehuels/depthplot/pkg/errors"
	"github.com/matzehuels/depthplot/pkg/palette"
	"github.com/matzehuels/depthplot/pkg/render/sink"
	"github.com/matzehuels/depthplot/pkg/scene"
)

const (
	// DefaultWidth is the default SVG width in pixels.
	DefaultWidth = sink.DefaultWidth

	// DefaultTitle is the default chart title.
	DefaultTitle = "Depth Plot"

	// DefaultTTL is how long rendered artifacts stay cached.
	DefaultTTL = 7 * 24 * time.Hour
)

// DefaultFormats are rendered when Options.Formats is empty.
var DefaultFormats = []string{string(sink.FormatSVG)}

// DefaultNamespace seeds deterministic mesh ids.
var DefaultNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/depthplot"))

// Options configures a pipeline run. It supports JSON for API requests.
type Options struct {
	Formats []string `json:"formats,omitempty"`
	Width   float64  `json:"width,omitempty"`
	Title   string   `json:"title,omitempty"`

	// PalettePath is a TOML palette file; empty means the default palette.
	PalettePath string `json:"palette,omitempty"`

	// Namespace seeds deterministic ids. It may be a UUID or any string.
	Namespace string `json:"namespace,omitempty"`
	// RandomIDs switches to random ids; artifacts are then never cached.
	RandomIDs bool `json:"random_ids,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool          `json:"refresh,omitempty"`
	TTL     time.Duration `json:"-"`

	// Palette overrides PalettePath when set.
	Palette *palette.Table `json:"-"`
	// Logger receives per-record debug output; nil means the runner's logger.
	Logger *log.Logger `json:"-"`

	formats   []sink.Format
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Scene       *scene.Scene
	Plot        *depth.Plot
	RecordsHash string

	// Artifacts holds rendered outputs keyed by format name.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	Records   int
	Blocks    int
	Skipped   int
	BuildTime time.Duration
	// RenderTime covers all formats, cached or not.
	RenderTime time.Duration
}

// CacheInfo tracks which artifacts came from the cache.
type CacheInfo struct {
	Hits   []string
	Misses []string
}

// AllHit reports whether every artifact came from the cache.
func (c CacheInfo) AllHit() bool { return len(c.Hits) > 0 && len(c.Misses) == 0 }

// ValidateAndSetDefaults checks the options, loads the palette and applies
// defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	formats, err := sink.ParseFormats(o.Formats)
	if err != nil {
		return err
	}
	o.formats = formats
	o.Formats = make([]string, len(formats))
	for i, f := range formats {
		o.Formats[i] = string(f)
	}

	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must be positive, got %v", o.Width)
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if strings.TrimSpace(o.Title) == "" {
		o.Title = DefaultTitle
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}

	if o.Palette == nil {
		t := palette.Default()
		if o.PalettePath != "" {
			if t, err = palette.Load(o.PalettePath); err != nil {
				return err
			}
		}
		o.Palette = &t
	}

	o.validated = true
	return nil
}

// IDNamespace returns the namespace for deterministic ids. A Namespace that
// parses as a UUID is used as is; any other string is hashed into one.
func (o *Options) IDNamespace() uuid.UUID {
	if o.Namespace == "" {
		return DefaultNamespace
	}
	if id, err := uuid.Parse(o.Namespace); err == nil {
		return id
	}
	return uuid.NewSHA1(DefaultNamespace, []byte(o.Namespace))
}

// NewScene returns an empty scene with the id source the options select.
func (o *Options) NewScene() *scene.Scene {
	if o.RandomIDs {
		return scene.New()
	}
	return scene.New(scene.WithSequentialIDs(o.IDNamespace()))
}

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Width:       o.Width,
		Title:       o.Title,
		PaletteHash: PaletteHash(*o.Palette),
		Namespace:   o.IDNamespace().String(),
	}
}

// PaletteHash fingerprints a palette for cache keys.
func PaletteHash(t palette.Table) string {
	var b strings.Builder
	for _, s := range t.Styles() {
		c, _ := t.Lookup(s)
		b.WriteString(s)
		b.WriteByte('=')
		b.WriteString(c.Hex())
		b.WriteByte('\n')
	}
	return cache.Hash([]byte(b.String()))
}
