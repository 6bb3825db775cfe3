package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depthplot/pkg/depth"
	"github.com/matzehuels/depthplot/pkg/errors"
	"github.com/matzehuels/depthplot/pkg/pipeline"
	"github.com/matzehuels/depthplot/pkg/render/sink"
)

// renderOpts holds the command-line flags for the render command. Zero
// values fall back to the config file.
type renderOpts struct {
	output    string // output file (single format) or base path
	formats   string // comma-separated formats
	width     float64
	title     string
	palette   string // TOML palette path
	namespace string // id namespace for deterministic ids
	randomIDs bool
	noCache   bool
	refresh   bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render an artwork file to svg, json, html, png, dot or graphviz",
		Long: `Render lays out the artworks in a JSON or YAML file and writes one file per
requested format. Without --output, files are named after the input:
artworks.json becomes artworks.svg, artworks.png and so on.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s), comma-separated: "+formatList())
	cmd.Flags().Float64Var(&opts.width, "width", 0, "svg width in pixels")
	cmd.Flags().StringVar(&opts.title, "title", "", "chart title (html, png)")
	cmd.Flags().StringVar(&opts.palette, "palette", "", "TOML palette file")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "namespace for deterministic block ids")
	cmd.Flags().BoolVar(&opts.randomIDs, "random-ids", false, "use random block ids (disables caching)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// pipelineOptions merges flags over the config file.
func (c *CLI) pipelineOptions(opts renderOpts) pipeline.Options {
	po := c.cfg.PipelineOptions()
	po.Formats = parseFormats(opts.formats, po.Formats)
	if opts.width > 0 {
		po.Width = opts.width
	}
	if opts.title != "" {
		po.Title = opts.title
	}
	if opts.palette != "" {
		po.PalettePath = opts.palette
	}
	if opts.namespace != "" {
		po.Namespace = opts.namespace
	}
	po.RandomIDs = opts.randomIDs
	po.Refresh = opts.refresh
	po.Logger = c.Logger
	return po
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	prog := newProgress(loggerFromContext(ctx))
	po := c.pipelineOptions(opts)
	if err := po.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if opts.output == "" {
		opts.output = c.cfg.Output
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.ExecuteFile(ctx, input, po)
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, input, po.Formats)
	c.printSuccess("Rendered %s", input)
	c.printStats(res.Stats.Blocks, res.Stats.Skipped, res.CacheInfo.AllHit())
	for _, f := range po.Formats {
		if err := writeOutput(paths[f], res.Artifacts[f]); err != nil {
			return err
		}
		c.printFile(paths[f])
	}
	if res.Stats.Blocks == 0 {
		c.printWarning("No artwork fell inside %d-%d with a known style", depth.GraphStartYear, depth.GraphEndYear)
	}
	prog.done("Render complete")
	return nil
}

// outputPaths maps each format to its file. A single format writes to
// output as given; multiple formats share a base path derived from output
// or the input file. A path that would overwrite the input gets a ".plot"
// infix.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		ext := sink.Format(f).Ext()
		paths[f] = base + ext
		if filepath.Clean(paths[f]) == filepath.Clean(input) {
			paths[f] = base + ".plot" + ext
		}
	}
	return paths
}

// basePath strips a known format extension from output, or the input's
// extension when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := sink.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

func formatList() string {
	names := make([]string, 0, len(sink.Formats()))
	for _, f := range sink.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
