package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depthplot/pkg/render/sink"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for depthplot.

Besides commands and flags, the scripts complete record files (.json,
.yaml, .yml) for render, lookup, stats, serve and convert, TOML files for
--palette, and output format names for --format, including after a comma
as in "--format svg,<TAB>".

To load completions:

Bash:
  $ source <(depthplot completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ depthplot completion bash > /etc/bash_completion.d/depthplot
  # macOS:
  $ depthplot completion bash > $(brew --prefix)/etc/bash_completion.d/depthplot

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ depthplot completion zsh > "${fpath[1]}/_depthplot"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ depthplot completion fish | source

  # To load completions for each session, execute once:
  $ depthplot completion fish > ~/.config/fish/completions/depthplot.fish

PowerShell:
  PS> depthplot completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> depthplot completion powershell > depthplot.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(c.Out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(c.Out)
			case "fish":
				return cmd.Root().GenFishCompletion(c.Out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(c.Out)
			}
			return nil
		},
	}

	return cmd
}

// registerInputCompletions wires completion for the first files positional
// arguments and for the --palette and --format flags when cmd has them.
func registerInputCompletions(cmd *cobra.Command, files int) *cobra.Command {
	if files > 0 {
		cmd.ValidArgsFunction = recordFileArgs(files)
	}
	if cmd.Flags().Lookup("palette") != nil {
		_ = cmd.RegisterFlagCompletionFunc("palette", completePaletteFiles)
	}
	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	}
	return cmd
}

func recordFileArgs(n int) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) >= n {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return []string{"json", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	}
}

func completePaletteFiles(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes the last entry of a comma-separated format list,
// skipping formats already listed.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix, partial := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix, partial = toComplete[:i+1], toComplete[i+1:]
	}
	chosen := strings.Split(strings.TrimSuffix(prefix, ","), ",")

	var out []string
	for _, f := range sink.Formats() {
		name := string(f)
		if !strings.HasPrefix(name, strings.ToLower(partial)) || slices.Contains(chosen, name) {
			continue
		}
		out = append(out, prefix+name)
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
