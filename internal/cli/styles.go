package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depthplot/pkg/palette"
)

// stylesCommand prints the style palette as a table.
func (c *CLI) stylesCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List the art styles and their colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = c.cfg.Palette
			}
			t := palette.Default()
			if path != "" {
				var err error
				if t, err = palette.Load(path); err != nil {
					return err
				}
			}
			fmt.Fprintln(c.Out, paletteTable(t))
			c.printDetail("%d styles", t.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "palette", "", "TOML palette file")
	return cmd
}
