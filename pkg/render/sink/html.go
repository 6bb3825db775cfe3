package sink

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/matzehuels/depthplot/pkg/depth"
)

// HTMLOption configures HTML rendering.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	title      string
	width      string
	height     string
	symbolSize int
	assetsHost string
}

// WithHTMLTitle sets the page and chart title.
func WithHTMLTitle(t string) HTMLOption { return func(r *htmlRenderer) { r.title = t } }

// WithHTMLSize sets the chart size as CSS lengths ("900px", "100%").
func WithHTMLSize(width, height string) HTMLOption {
	return func(r *htmlRenderer) { r.width, r.height = width, height }
}

// WithHTMLAssetsHost serves the echarts script from a custom prefix.
func WithHTMLAssetsHost(host string) HTMLOption {
	return func(r *htmlRenderer) { r.assetsHost = host }
}

// RenderHTML renders the plot as a standalone HTML page holding an echarts
// scatter chart: year on X, depth rank on Y, one series per canonical style
// in the style's palette color. Hovering a point shows the artwork title.
func RenderHTML(p *depth.Plot, options ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{
		title:      "Depth Plot",
		width:      "1200px",
		height:     "600px",
		symbolSize: 12,
	}
	for _, opt := range options {
		opt(&r)
	}

	series, order := groupByStyle(p)

	initOpts := opts.Initialization{PageTitle: r.title, Width: r.width, Height: r.height}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{
			Title:    r.title,
			Subtitle: fmt.Sprintf("blocks=%d styles=%d", p.Len(), len(order)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{
			Min: depth.GraphStartYear, Max: depth.GraphEndYear,
			Name: "Year", NameLocation: "middle", NameGap: 25,
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Range", NameLocation: "middle", NameGap: 30}),
	)

	for _, style := range order {
		color, _ := p.Palette().Lookup(style)
		scatter.AddSeries(style, series[style],
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: r.symbolSize}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color.Hex()}),
		)
	}

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// groupByStyle collects scatter points per canonical style. order lists the
// styles in the order they first appear in the plot.
func groupByStyle(p *depth.Plot) (map[string][]opts.ScatterData, []string) {
	series := make(map[string][]opts.ScatterData)
	var order []string
	for _, b := range p.Blocks() {
		style := b.Mesh.Name
		if _, ok := series[style]; !ok {
			order = append(order, style)
		}
		series[style] = append(series[style], opts.ScatterData{
			Name:  blockTitle(b),
			Value: []interface{}{b.Record.Year, b.Record.Range},
		})
	}
	return series, order
}
