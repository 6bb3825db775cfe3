package depth

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/depthplot/pkg/artwork"
	"github.com/matzehuels/depthplot/pkg/palette"
	"github.com/matzehuels/depthplot/pkg/scene"
)

// Group and mesh names used in the scene graph.
const (
	GroupName = "blocks"
	AxisName  = "axis"
	TickName  = "tick"
)

// Option configures [New].
type Option func(*config)

type config struct {
	palette palette.Table
	logger  *log.Logger
}

// WithPalette replaces the default style palette.
func WithPalette(p palette.Table) Option {
	return func(c *config) { c.palette = p }
}

// WithLogger sets the logger used for per-record debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Block pairs a rendered mesh with the artwork it represents.
type Block struct {
	Mesh   *scene.Mesh
	Record artwork.Record
}

// Tick is one axis tick mark.
type Tick struct {
	Year int
	Mesh *scene.Mesh
}

// Stats summarizes a build.
type Stats struct {
	Total        int // records received
	Rendered     int // blocks created
	OutOfWindow  int // skipped: year outside the time window
	UnknownStyle int // skipped: canonical style not in the palette
}

// Plot is a built depth plot. It owns the block group and the index from
// block id to artwork; both are populated together and never shrink.
type Plot struct {
	group   *scene.Group
	axis    *scene.Mesh
	ticks   []Tick
	index   map[uuid.UUID]artwork.Record
	meshes  map[uuid.UUID]*scene.Mesh
	order   []*scene.Mesh
	palette palette.Table
	stats   Stats
}

// New lays out records into g.
//
// It validates every record first; a malformed record (empty style, NaN or
// infinite range) aborts the build with an errors.ErrCodeInvalidRecord error
// and g is left untouched. Otherwise it adds the block group, the axis bar
// and the ticks to g and returns the plot.
func New(g scene.Graph, records []artwork.Record, opts ...Option) (*Plot, error) {
	cfg := config{
		palette: palette.Default(),
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := artwork.ValidateAll(records); err != nil {
		return nil, err
	}

	p := &Plot{
		group:   g.NewGroup(GroupName),
		index:   make(map[uuid.UUID]artwork.Record, len(records)),
		meshes:  make(map[uuid.UUID]*scene.Mesh, len(records)),
		palette: cfg.palette,
		stats:   Stats{Total: len(records)},
	}
	g.Add(p.group)

	for i, rec := range records {
		p.place(g, cfg.logger, i, rec)
	}
	p.buildAxis(g)

	cfg.logger.Debug("built depth plot",
		"records", p.stats.Total,
		"blocks", p.stats.Rendered,
		"out_of_window", p.stats.OutOfWindow,
		"unknown_style", p.stats.UnknownStyle)

	return p, nil
}

func (p *Plot) place(g scene.Graph, logger *log.Logger, i int, rec artwork.Record) {
	if !InTimeWindow(rec.Year) {
		p.stats.OutOfWindow++
		logger.Debug("skipping record outside time window", "index", i, "year", rec.Year)
		return
	}

	style := rec.CanonicalStyle()
	color, ok := p.palette.Lookup(style)
	if !ok {
		p.stats.UnknownStyle++
		logger.Debug("skipping record with unknown style", "index", i, "style", style)
		return
	}

	mesh := g.NewMesh(style, BlockGeometry(rec.Year, rec.Range), scene.Material{
		Color:       color,
		Opacity:     DefaultOpacity,
		Transparent: true,
	})
	p.index[mesh.ID()] = rec
	p.meshes[mesh.ID()] = mesh
	p.order = append(p.order, mesh)
	p.group.Add(mesh)
	p.stats.Rendered++
}

func (p *Plot) buildAxis(g scene.Graph) {
	mat := scene.Material{Color: AxisColor, Opacity: 1}

	p.axis = g.NewMesh(AxisName, AxisGeometry(), mat)
	g.Add(p.axis)

	for _, year := range TickYears() {
		m := g.NewMesh(TickName, TickGeometry(year), mat)
		g.Add(m)
		p.ticks = append(p.ticks, Tick{Year: year, Mesh: m})
	}
}

// Lookup returns the artwork a block was built from. ok is false for ids that
// do not belong to a block of this plot, such as the axis, ticks or ids from
// another scene.
func (p *Plot) Lookup(id uuid.UUID) (rec artwork.Record, ok bool) {
	rec, ok = p.index[id]
	return rec, ok
}

// Block returns the mesh of the block with the given id.
func (p *Plot) Block(id uuid.UUID) (*scene.Mesh, bool) {
	m, ok := p.meshes[id]
	return m, ok
}

// SetSelected overwrites the block's material color and sets its opacity to
// SelectedOpacity or DefaultOpacity. Calling it again with the same arguments
// has no further effect. A nil mesh is ignored.
func (p *Plot) SetSelected(m *scene.Mesh, color scene.Color, selected bool) {
	if m == nil || m.Material == nil {
		return
	}
	m.Material.Color = color
	if selected {
		m.Material.Opacity = SelectedOpacity
	} else {
		m.Material.Opacity = DefaultOpacity
	}
}

// Blocks returns the blocks in the order their records were given.
func (p *Plot) Blocks() []Block {
	blocks := make([]Block, len(p.order))
	for i, m := range p.order {
		blocks[i] = Block{Mesh: m, Record: p.index[m.ID()]}
	}
	return blocks
}

// Group returns the group holding every block.
func (p *Plot) Group() *scene.Group { return p.group }

// Axis returns the axis bar mesh.
func (p *Plot) Axis() *scene.Mesh { return p.axis }

// Ticks returns the axis ticks in year order.
func (p *Plot) Ticks() []Tick { return p.ticks }

// Palette returns the palette the plot was built with.
func (p *Plot) Palette() palette.Table { return p.palette }

// Stats returns the build summary.
func (p *Plot) Stats() Stats { return p.stats }

// Len returns the number of blocks.
func (p *Plot) Len() int { return len(p.order) }
