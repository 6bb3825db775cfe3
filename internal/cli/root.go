package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/depthplot/pkg/buildinfo"
	"github.com/matzehuels/depthplot/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The persistent pre-run loads the config file, registers log-backed
// observability hooks and attaches the logger to the command context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Depthplot lays out artworks on a 3D timeline",
		Long:         `Depthplot places artworks as colored blocks along a timeline from 1300 to 2020, one block per artwork, positioned by year and depth and colored by art style.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetPipelineHooks(observability.NewLogHooks(c.Logger))
			observability.SetCacheHooks(observability.NewLogHooks(c.Logger))
			observability.SetHTTPHooks(observability.NewLogHooks(c.Logger))
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/depthplot/config.yaml)")

	root.AddCommand(registerInputCompletions(c.renderCommand(), 1))
	root.AddCommand(registerInputCompletions(c.lookupCommand(), 1))
	root.AddCommand(registerInputCompletions(c.stylesCommand(), 0))
	root.AddCommand(registerInputCompletions(c.statsCommand(), 1))
	root.AddCommand(registerInputCompletions(c.serveCommand(), 1))
	root.AddCommand(registerInputCompletions(c.convertCommand(), 2))
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
