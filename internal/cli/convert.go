package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depthplot/pkg/artwork"
	dataio "github.com/matzehuels/depthplot/pkg/io"
)

// convertCommand rewrites an artwork file in another format, picked by the
// output extension.
func (c *CLI) convertCommand() *cobra.Command {
	var validate bool

	cmd := &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert an artwork file between JSON and YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args[0], args[1], validate)
		},
	}

	cmd.Flags().BoolVar(&validate, "validate", true, "reject records that cannot be plotted")
	return cmd
}

func (c *CLI) runConvert(_ context.Context, input, output string, validate bool) error {
	records, err := dataio.ImportFile(input)
	if err != nil {
		return err
	}
	if validate {
		if err := artwork.ValidateAll(records); err != nil {
			return err
		}
	}
	if err := dataio.ExportFile(records, output); err != nil {
		return err
	}
	c.printSuccess("Converted %d records", len(records))
	c.printFile(output)
	return nil
}
