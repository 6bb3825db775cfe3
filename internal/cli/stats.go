package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depthplot/pkg/depth"
	"github.com/matzehuels/depthplot/pkg/pipeline"
)

// statsCommand summarizes a build: skip counts, blocks per style and a
// chart of blocks per century.
func (c *CLI) statsCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Summarize how artworks spread over time and styles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd.Context(), args[0], c.pipelineOptions(opts))
		},
	}

	cmd.Flags().StringVar(&opts.palette, "palette", "", "TOML palette file")
	return cmd
}

func (c *CLI) runStats(ctx context.Context, input string, opts pipeline.Options) error {
	_, res, err := c.build(ctx, input, opts)
	if err != nil {
		return err
	}
	st := res.Plot.Stats()

	fmt.Fprintln(c.Out, StyleTitle.Render(input))
	c.printKeyValue("records", strconv.Itoa(st.Total))
	c.printKeyValue("blocks", strconv.Itoa(st.Rendered))
	c.printKeyValue("out of time", strconv.Itoa(st.OutOfWindow))
	c.printKeyValue("no style", strconv.Itoa(st.UnknownStyle))

	blocks := res.Plot.Blocks()
	if len(blocks) == 0 {
		return nil
	}

	styles, counts := styleCounts(blocks)
	tbl := newTable("Style", "Blocks")
	for _, s := range styles {
		tbl.Row(s, strconv.Itoa(counts[s]))
	}
	fmt.Fprintln(c.Out, tbl.String())

	fmt.Fprintln(c.Out, centuryChart(blocks))
	return nil
}

// centuryBins counts blocks per tick interval. The last bin runs from the
// last tick to the end of the time window.
func centuryBins(blocks []depth.Block) []float64 {
	ticks := depth.TickYears()
	bins := make([]float64, len(ticks))
	for _, b := range blocks {
		i := (b.Record.Year - depth.GraphStartYear) / depth.TickInterval
		i = min(max(i, 0), len(bins)-1)
		bins[i]++
	}
	return bins
}

func centuryChart(blocks []depth.Block) string {
	ticks := depth.TickYears()
	caption := fmt.Sprintf("blocks per %d years, %d-%d", depth.TickInterval, ticks[0], depth.GraphEndYear)
	return asciigraph.Plot(centuryBins(blocks),
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	)
}

// styleCounts returns the canonical styles present, sorted, with their
// block counts.
func styleCounts(blocks []depth.Block) ([]string, map[string]int) {
	counts := make(map[string]int)
	for _, b := range blocks {
		counts[b.Mesh.Name]++
	}
	styles := make([]string, 0, len(counts))
	for s := range counts {
		styles = append(styles, s)
	}
	slices.Sort(styles)
	return styles, counts
}
