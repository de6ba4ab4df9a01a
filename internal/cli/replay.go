package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxwire/pkg/diagram"
	"github.com/matzehuels/boxwire/pkg/gesture"
	bwio "github.com/matzehuels/boxwire/pkg/io"
	"github.com/matzehuels/boxwire/pkg/script"
)

type replayOpts struct {
	write  bool   // save the result back to the diagram source
	output string // save the result to this file
	quiet  bool   // skip the per-change listing
}

// replayCommand runs a gesture script against a diagram.
func (c *CLI) replayCommand() *cobra.Command {
	var opts replayOpts

	cmd := &cobra.Command{
		Use:   "replay DIAGRAM SCRIPT",
		Short: "Replay a gesture script against a diagram",
		Long: `Replay the pointer events of a TOML gesture script against a diagram and
report the changes they caused.

DIAGRAM is a JSON file or @name for a stored diagram. The result is only
saved with --write (back to DIAGRAM) or --output.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeDiagram,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReplay(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "save the result back to DIAGRAM")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "save the result to a JSON file")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "only print the summary")

	return cmd
}

func (c *CLI) runReplay(ctx context.Context, diagramArg, scriptPath string, opts replayOpts) error {
	logger := loggerFromContext(ctx)
	sw := startStopwatch(logger)

	d, err := c.loadDiagram(ctx, diagramArg)
	if err != nil {
		return err
	}
	sc, err := script.Load(scriptPath)
	if err != nil {
		return err
	}
	c.applyScriptDefaults(sc)

	res, err := script.Replay(ctx, d, sc, gesture.WithLogger(c.Logger))
	if err != nil {
		return err
	}
	sw.lap("replayed", "steps", res.Steps, "armed", res.Armed)

	if !opts.quiet {
		for _, ch := range res.Changes {
			if ch.Phase != diagram.PhaseStep {
				printDetail("%s", describeChange(ch))
			}
		}
	}
	printSuccess("%d armed · %d committed · %d cancelled", res.Armed, res.Commits(), res.Cancels())

	if opts.write {
		if err := c.saveDiagram(ctx, diagramArg, d); err != nil {
			return err
		}
		printFile(diagramArg)
	}
	if opts.output != "" {
		if err := bwio.ExportJSON(d, opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	}
	return nil
}

// applyScriptDefaults fills settings a script leaves open from the config.
func (c *CLI) applyScriptDefaults(sc *script.Script) {
	if sc.Threshold == nil {
		th := c.Config.Gesture.Threshold
		sc.Threshold = &th
	}
	if sc.Modifiers == nil {
		sc.Modifiers = c.Config.Gesture.RequiredModifiers
	}
}

// describeChange formats a change for display.
func describeChange(ch diagram.Change) string {
	head := fmt.Sprintf("%-9s %-6s %s", ch.Kind, ch.Phase, ch.ID)
	switch ch.Kind {
	case diagram.KindResize:
		r := ch.Rect
		return fmt.Sprintf("%s  %s %s %s %s", head, r.Left, r.Top, r.Width, r.Height)
	case diagram.KindReorder:
		return fmt.Sprintf("%s  %v", head, ch.Order)
	case diagram.KindOffset:
		return fmt.Sprintf("%s  %s", head, ch.Offset)
	case diagram.KindRearrange:
		return fmt.Sprintf("%s  %s", head, ch.Path)
	}
	return head
}
