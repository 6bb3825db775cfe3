package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depthplot/pkg/artwork"
	"github.com/matzehuels/depthplot/pkg/errors"
	"github.com/matzehuels/depthplot/pkg/pipeline"
)

// lookupCommand resolves block ids back to artworks. Ids are deterministic,
// so ids taken from a rendered svg or json resolve against the same file.
func (c *CLI) lookupCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "lookup [file] [id]",
		Short: "Show the artwork behind a block id, or list all blocks",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			po := c.pipelineOptions(opts)
			if len(args) == 1 {
				return c.runList(cmd.Context(), args[0], po)
			}
			return c.runLookup(cmd.Context(), args[0], args[1], po)
		},
	}

	cmd.Flags().StringVar(&opts.palette, "palette", "", "TOML palette file")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "namespace for deterministic block ids")

	return cmd
}

func (c *CLI) runLookup(ctx context.Context, input, rawID string, opts pipeline.Options) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid block id %q", rawID)
	}

	_, res, err := c.build(ctx, input, opts)
	if err != nil {
		return err
	}

	rec, ok := res.Plot.Lookup(id)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no block with id %s in %s", id, input)
	}
	c.printRecord(id, rec)
	return nil
}

func (c *CLI) printRecord(id uuid.UUID, rec artwork.Record) {
	fmt.Fprintln(c.Out, StyleTitle.Render(rec.Title))
	c.printKeyValue("id", id.String())
	if rec.ID != "" {
		c.printKeyValue("record", rec.ID)
	}
	c.printKeyValue("artist", rec.Artist)
	c.printKeyValue("year", strconv.Itoa(rec.Year))
	c.printKeyValue("style", rec.Style)
	c.printKeyValue("range", strconv.FormatFloat(rec.Range, 'f', -1, 64))
	if rec.Image != "" {
		c.printKeyValue("image", rec.Image)
	}
}

func (c *CLI) runList(ctx context.Context, input string, opts pipeline.Options) error {
	_, res, err := c.build(ctx, input, opts)
	if err != nil {
		return err
	}

	tbl := newTable("Id", "Year", "Style", "Title")
	for _, b := range res.Plot.Blocks() {
		tbl.Row(b.Mesh.ID().String(), strconv.Itoa(b.Record.Year), b.Mesh.Name, b.Record.Title)
	}
	fmt.Fprintln(c.Out, tbl.String())
	c.printStats(res.Stats.Blocks, res.Stats.Skipped, false)
	return nil
}
