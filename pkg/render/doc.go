// Package render groups the output stages of a depth plot.
//
// The [sink] subpackage turns a built depth plot into files:
//
//   - SVG: a front view drawn directly as SVG markup
//   - HTML: an interactive ECharts scatter of the blocks
//   - PNG: a gonum/plot raster of the same front view
//   - JSON: blocks with their records, axis and ticks
//   - DOT and Graphviz SVG: the [scene.Scene] hierarchy as a graph
//
// Use [sink.ParseFormat] to map a name like "svg" to a format and
// [sink.Format.Ext] to pick a file extension.
//
// [sink]: https://pkg.go.dev/github.com/matzehuels/depthplot/pkg/render/sink
// [scene.Scene]: https://pkg.go.dev/github.com/matzehuels/depthplot/pkg/scene#Scene
// [sink.ParseFormat]: https://pkg.go.dev/github.com/matzehuels/depthplot/pkg/render/sink#ParseFormat
// [sink.Format.Ext]: https://pkg.go.dev/github.com/matzehuels/depthplot/pkg/render/sink#Format.Ext
package render
