package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/depthplot/pkg/scene"
)

// DOTOption configures scene-graph DOT output.
type DOTOption func(*dotRenderer)

type dotRenderer struct {
	detailed bool
}

// WithDOTDetailed adds geometry and material details to mesh labels.
func WithDOTDetailed() DOTOption { return func(r *dotRenderer) { r.detailed = true } }

// ToDOT converts a scene graph to Graphviz DOT. The scene root becomes a
// node of its own; every group and mesh is linked to its parent. Meshes are
// filled with their material color and opacity.
func ToDOT(sc *scene.Scene, opts ...DOTOption) string {
	var r dotRenderer
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph scene {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.1;\n")
	buf.WriteString("\n")
	buf.WriteString("  \"scene\" [shape=ellipse, label=\"scene\"];\n")

	var edges []string
	parents := []string{"scene"}
	sc.Walk(func(o scene.Object, depth int) bool {
		id := o.ID().String()
		parents = append(parents[:depth+1], id)
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(dotAttrs(o, r.detailed), ", "))
		edges = append(edges, fmt.Sprintf("  %q -> %q;\n", parents[depth], id))
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func dotAttrs(o scene.Object, detailed bool) []string {
	switch v := o.(type) {
	case *scene.Group:
		label := fmt.Sprintf("%s (%d)", v.Name, v.Len())
		return []string{fmt.Sprintf("label=%q", label), "shape=folder", "fillcolor=lightgrey"}
	case *scene.Mesh:
		label := v.Name
		if detailed {
			c := v.Geometry.Center
			label += fmt.Sprintf("\nat (%.2f, %.2f, %.2f)\n%s @ %.2f", c.X, c.Y, c.Z, v.Material.Color.Hex(), v.Material.Opacity)
		}
		fill := fmt.Sprintf("%s%02x", v.Material.Color.Hex(), v.Material.Color.NRGBA(v.Material.Opacity).A)
		return []string{fmt.Sprintf("label=%q", label), fmt.Sprintf("fillcolor=%q", fill)}
	default:
		return []string{fmt.Sprintf("label=%q", o.Label())}
	}
}

// RenderGraphviz renders a DOT graph to SVG using Graphviz.
func RenderGraphviz(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the pt-sized root tag Graphviz emits with a
// pixel-sized one anchored at the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
