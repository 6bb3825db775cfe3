package sink

import (
	"bytes"
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/depthplot/pkg/depth"
	"github.com/matzehuels/depthplot/pkg/scene"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	width  vg.Length
	height vg.Length
	title  string
}

// WithPNGSize sets the image size in inches at the gonum/plot default DPI.
func WithPNGSize(width, height float64) PNGOption {
	return func(r *pngRenderer) {
		if width > 0 && height > 0 {
			r.width, r.height = vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch
		}
	}
}

// WithPNGTitle sets the plot title.
func WithPNGTitle(t string) PNGOption { return func(r *pngRenderer) { r.title = t } }

// RenderPNG rasterizes the front view of the plot with gonum/plot: every
// mesh becomes a filled polygon in scene coordinates and the X axis is
// labeled with the tick years.
func RenderPNG(p *depth.Plot, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{width: 14 * vg.Inch, height: 6 * vg.Inch, title: "Depth Plot"}
	for _, opt := range opts {
		opt(&r)
	}

	pl := plot.New()
	pl.Title.Text = r.title
	pl.X.Label.Text = "Year"
	pl.Y.Label.Text = "Range"

	min, max := Bounds(p)
	pl.X.Min, pl.X.Max = min.X, max.X
	pl.Y.Min, pl.Y.Max = min.Y, max.Y

	var ticks []plot.Tick
	for _, t := range p.Ticks() {
		ticks = append(ticks, plot.Tick{Value: t.Mesh.Geometry.Center.X, Label: strconv.Itoa(t.Year)})
	}
	pl.X.Tick.Marker = plot.ConstantTicks(ticks)

	add := func(m *scene.Mesh) error {
		poly, err := frontFace(m)
		if err != nil {
			return err
		}
		pl.Add(poly)
		return nil
	}

	if axis := p.Axis(); axis != nil {
		if err := add(axis); err != nil {
			return nil, err
		}
	}
	for _, t := range p.Ticks() {
		if err := add(t.Mesh); err != nil {
			return nil, err
		}
	}
	for _, b := range p.Blocks() {
		if err := add(b.Mesh); err != nil {
			return nil, err
		}
	}

	w, err := pl.WriterTo(r.width, r.height, "png")
	if err != nil {
		return nil, fmt.Errorf("create png canvas: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// frontFace returns the mesh's XY rectangle as a filled polygon.
func frontFace(m *scene.Mesh) (*plotter.Polygon, error) {
	lo, hi := m.Geometry.Min(), m.Geometry.Max()
	poly, err := plotter.NewPolygon(plotter.XYs{
		{X: lo.X, Y: lo.Y},
		{X: hi.X, Y: lo.Y},
		{X: hi.X, Y: hi.Y},
		{X: lo.X, Y: hi.Y},
	})
	if err != nil {
		return nil, fmt.Errorf("mesh %s: %w", m.ID(), err)
	}
	poly.Color = m.Material.Color.NRGBA(m.Material.Opacity)
	poly.LineStyle.Width = 0
	return poly, nil
}
