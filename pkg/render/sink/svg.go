package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strconv"

	"github.com/matzehuels/depthplot/pkg/depth"
	"github.com/matzehuels/depthplot/pkg/scene"
)

const (
	DefaultWidth  = 1200.0
	DefaultMargin = 40.0
)

const svgCSS = `
    .block { stroke: none; }
    .block.selected { stroke: #222; stroke-width: 1; }
    .tick-label { font: 12px sans-serif; fill: #555; text-anchor: middle; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width      float64
	margin     float64
	background string
	labels     bool
}

// WithWidth sets the pixel width of the drawing. The height follows from the
// plot's extent.
func WithWidth(px float64) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.width = px
		}
	}
}

func WithMargin(px float64) SVGOption   { return func(r *svgRenderer) { r.margin = px } }
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }
func WithoutTickLabels() SVGOption      { return func(r *svgRenderer) { r.labels = false } }

// viewport maps scene coordinates (Y up) to SVG pixels (Y down).
type viewport struct {
	min, max scene.Vec3
	scale    float64
	margin   float64
}

func (v viewport) x(sx float64) float64 { return (sx-v.min.X)*v.scale + v.margin }
func (v viewport) y(sy float64) float64 { return (v.max.Y-sy)*v.scale + v.margin }

func (v viewport) size() (w, h float64) {
	return (v.max.X-v.min.X)*v.scale + 2*v.margin, (v.max.Y-v.min.Y)*v.scale + 2*v.margin
}

// RenderSVG draws an orthographic front view of the plot: X to the right,
// Y up, Z dropped. Blocks carry their mesh id in data-id so a client can
// resolve them through the lookup API.
func RenderSVG(p *depth.Plot, opts ...SVGOption) []byte {
	r := svgRenderer{width: DefaultWidth, margin: DefaultMargin, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	min, max := Bounds(p)
	inner := r.width - 2*r.margin
	if inner <= 0 {
		inner = r.width
	}
	vp := viewport{min: min, max: max, scale: inner / (max.X - min.X), margin: r.margin}
	w, h := vp.size()
	labelSpace := 0.0
	if r.labels {
		labelSpace = 20
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h+labelSpace, w, h+labelSpace)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgCSS)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", html.EscapeString(r.background))
	}

	if axis := p.Axis(); axis != nil {
		writeRect(&buf, vp, axis, `class="axis"`, "")
	}
	for _, t := range p.Ticks() {
		writeRect(&buf, vp, t.Mesh, fmt.Sprintf(`class="tick" data-year="%d"`, t.Year), "")
	}
	if r.labels {
		for _, t := range p.Ticks() {
			fmt.Fprintf(&buf, `  <text class="tick-label" x="%.2f" y="%.2f">%d</text>`+"\n",
				vp.x(t.Mesh.Geometry.Center.X), vp.y(t.Mesh.Geometry.Min().Y)+16, t.Year)
		}
	}

	for _, b := range p.Blocks() {
		class := "block"
		if b.Mesh.Material.Opacity >= depth.SelectedOpacity {
			class = "block selected"
		}
		attrs := fmt.Sprintf(`class="%s" data-id="%s" data-style="%s"`, class, b.Mesh.ID(), html.EscapeString(b.Mesh.Name))
		writeRect(&buf, vp, b.Mesh, attrs, html.EscapeString(blockTitle(b)))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeRect(buf *bytes.Buffer, vp viewport, m *scene.Mesh, attrs, title string) {
	lo, hi := m.Geometry.Min(), m.Geometry.Max()
	fmt.Fprintf(buf, `  <rect %s x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="%s"`,
		attrs,
		vp.x(lo.X), vp.y(hi.Y),
		(hi.X-lo.X)*vp.scale, (hi.Y-lo.Y)*vp.scale,
		m.Material.Color.Hex(), strconv.FormatFloat(m.Material.Opacity, 'f', -1, 64))
	if title == "" {
		buf.WriteString("/>\n")
		return
	}
	fmt.Fprintf(buf, "><title>%s</title></rect>\n", title)
}

func blockTitle(b depth.Block) string {
	label := b.Record.Title
	if label == "" {
		label = b.Record.Style
	}
	if b.Record.Artist != "" {
		label += ", " + b.Record.Artist
	}
	return fmt.Sprintf("%s (%d)", label, b.Record.Year)
}

// Bounds returns the smallest box containing every mesh of the plot.
// An empty plot still has its axis, so the box is never degenerate.
func Bounds(p *depth.Plot) (min, max scene.Vec3) {
	min = scene.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max = scene.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	grow := func(m *scene.Mesh) {
		lo, hi := m.Geometry.Min(), m.Geometry.Max()
		min = scene.Vec3{X: math.Min(min.X, lo.X), Y: math.Min(min.Y, lo.Y), Z: math.Min(min.Z, lo.Z)}
		max = scene.Vec3{X: math.Max(max.X, hi.X), Y: math.Max(max.Y, hi.Y), Z: math.Max(max.Z, hi.Z)}
	}

	if p.Axis() != nil {
		grow(p.Axis())
	}
	for _, t := range p.Ticks() {
		grow(t.Mesh)
	}
	for _, b := range p.Blocks() {
		grow(b.Mesh)
	}
	if math.IsInf(min.X, 1) {
		return scene.Vec3{}, scene.Vec3{X: 1, Y: 1, Z: 1}
	}
	return min, max
}
