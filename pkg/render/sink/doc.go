// Package sink renders a built depth plot into output formats.
//
// # Overview
//
// A "sink" turns a [depth.Plot] (or the scene graph holding it) into bytes:
//
//   - JSON: blocks with their source records, axis, ticks and build stats
//   - SVG: orthographic front view with data-id attributes on blocks
//   - HTML: interactive echarts scatter chart, one series per style
//   - PNG: raster front view drawn with gonum/plot
//   - DOT: the scene-graph hierarchy in Graphviz syntax
//   - Graphviz: the DOT output laid out and rendered to SVG
//
// Renderers take functional options:
//
//	svg := sink.RenderSVG(p, sink.WithWidth(1600), sink.WithBackground("#fff"))
//	html, err := sink.RenderHTML(p, sink.WithHTMLTitle("Collection"))
//	png, err := sink.RenderPNG(p, sink.WithPNGSize(10, 4))
//
// # Front View
//
// SVG and PNG drop the Z axis. Scene Y grows upward; the SVG flips it so the
// axis sits at the bottom. Ticks are labeled with their year.
//
// # Scene Graph
//
// [ToDOT] walks a [scene.Scene] and emits one node per object, linked to its
// parent. [RenderGraphviz] lays it out with the bundled Graphviz (no system
// install needed).
//
// [depth.Plot]: github.com/matzehuels/depthplot/pkg/depth.Plot
// [scene.Scene]: github.com/matzehuels/depthplot/pkg/scene.Scene
package sink
