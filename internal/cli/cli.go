// Package cli implements the boxwire command-line interface.
//
// The commands are:
//   - route: print the default wire path between two port sides
//   - replay: run a gesture script against a diagram
//   - render: write a diagram as text, DOT, SVG, PNG or JSON
//   - edit: drag boxes, borders, ports and wires with the mouse in the terminal
//   - serve: expose the diagram store over HTTP
//   - store: list, add, print, remove and locate stored diagrams
//
// Diagram arguments are JSON files, or stored diagrams when prefixed with
// "@" (for example "@flow").
//
// All commands support --verbose (-v) for debug-level logging and --config
// to read settings from a file other than ~/.config/boxwire/config.toml.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxwire/internal/config"
	"github.com/matzehuels/boxwire/pkg/buildinfo"
	"github.com/matzehuels/boxwire/pkg/diagram"
	bwio "github.com/matzehuels/boxwire/pkg/io"
	"github.com/matzehuels/boxwire/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = config.AppName

	// storePrefix marks a diagram argument as a stored diagram name.
	storePrefix = "@"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger and built-in settings.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Settings are loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Boxwire edits box and wire diagrams with pointer gestures",
		Long:         `Boxwire is a CLI tool for diagrams of nested boxes joined by orthogonal wires. Gestures resize boxes, reorder borders, slide ports and reroute wires, from the terminal, from recorded scripts or over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			c.SetLogLevel(cfg.LogLevel())
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/boxwire/config.toml)")

	root.AddCommand(c.routeCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Diagram Loading
// =============================================================================

// diagramOptions returns the configured diagram options.
func (c *CLI) diagramOptions(extra ...diagram.Option) []diagram.Option {
	return append(c.Config.DiagramOptions(c.Logger), extra...)
}

// storeName reports whether arg names a stored diagram.
func storeName(arg string) (string, bool) {
	return strings.CutPrefix(arg, storePrefix)
}

// loadDiagram reads a diagram from a file or, for "@name", from the store.
func (c *CLI) loadDiagram(ctx context.Context, arg string, extra ...diagram.Option) (*diagram.Diagram, error) {
	name, stored := storeName(arg)
	if !stored {
		return bwio.ImportJSON(arg, c.diagramOptions(extra...)...)
	}
	st, err := c.Config.OpenStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	data, err := st.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return bwio.Unmarshal(data, c.diagramOptions(extra...)...)
}

// saveDiagram writes a diagram back to where loadDiagram read it.
func (c *CLI) saveDiagram(ctx context.Context, arg string, d *diagram.Diagram) error {
	name, stored := storeName(arg)
	if !stored {
		return bwio.ExportJSON(d, arg)
	}
	data, err := bwio.Marshal(d)
	if err != nil {
		return err
	}
	st, err := c.Config.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Put(ctx, name, data)
}

// openStore opens the configured store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	return c.Config.OpenStore(ctx)
}
