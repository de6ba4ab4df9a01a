package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxwire/internal/config"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for boxwire.

Completions cover commands, flags, port sides for "route" and stored
diagram names after "@".

Bash:
  $ source <(boxwire completion bash)

Zsh:
  $ boxwire completion zsh > "${fpath[1]}/_boxwire"

Fish:
  $ boxwire completion fish > ~/.config/fish/completions/boxwire.fish

PowerShell:
  PS> boxwire completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeDiagram completes the first argument of diagram commands. After
// "@" it offers stored diagram names, otherwise JSON files.
func (c *CLI) completeDiagram(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	if !strings.HasPrefix(toComplete, storePrefix) {
		return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
	}

	// Completion runs without the root hooks, so settings are read here.
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	st, err := cfg.OpenStore(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer st.Close()

	names, err := st.List(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	prefix := strings.TrimPrefix(toComplete, storePrefix)
	var out []string
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, storePrefix+name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

var sideNames = []string{"top", "left", "bottom", "right"}

// completeSides completes the FROM and TO arguments of route.
func completeSides(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) >= 2 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return sideNames, cobra.ShellCompDirectiveNoFileComp
}
