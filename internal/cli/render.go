package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxwire/pkg/errors"
	"github.com/matzehuels/boxwire/pkg/export"
)

type renderOpts struct {
	output  string  // output file (single format) or base path (multiple)
	formats string  // comma-separated format list
	cellW   float64 // text cell width in pixels
	cellH   float64 // text cell height in pixels
	labels  bool    // draw box labels
}

// renderCommand writes a diagram in one or more formats.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{labels: true}

	cmd := &cobra.Command{
		Use:   "render DIAGRAM",
		Short: "Render a diagram as text, DOT, SVG, PNG or JSON",
		Long: `Render a diagram in one or more formats.

A single text render without --output is printed to stdout. Otherwise each
format is written next to the input (or to --output) with its extension.`,
		Example: `  boxwire render flow.json
  boxwire render @flow -f svg,png -o out/flow`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeDiagram,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := parseFormats(opts.formats)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], formats, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): text (default), dot, svg, png, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.cellW, "cell-width", 8, "text: pixels per column")
	cmd.Flags().Float64Var(&opts.cellH, "cell-height", 16, "text: pixels per row")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "draw box labels")

	return cmd
}

// parseFormats parses the --format flag. If empty, defaults to text.
func parseFormats(s string) ([]export.Format, error) {
	if s == "" {
		return []export.Format{export.FormatText}, nil
	}
	var out []export.Format
	for _, name := range strings.Split(s, ",") {
		f, err := export.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// extension returns the file extension for a format.
func extension(f export.Format) string {
	if f == export.FormatText {
		return "txt"
	}
	return string(f)
}

// basePath derives the base output path. Without an output it strips the
// extension from the input; a stored diagram "@name" becomes "name".
func basePath(output, input string) string {
	if output != "" {
		if _, err := export.ParseFormat(filepath.Ext(output)); err == nil {
			return strings.TrimSuffix(output, filepath.Ext(output))
		}
		return output
	}
	if name, ok := storeName(input); ok {
		return name
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

func (c *CLI) runRender(ctx context.Context, input string, formats []export.Format, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	d, err := c.loadDiagram(ctx, input)
	if err != nil {
		return err
	}
	logger.Debug("loaded diagram", "name", d.Name, "width", d.Size.Width, "height", d.Size.Height)

	sw := startStopwatch(logger)
	eopts := c.Config.ExportOptions()
	eopts.CellWidth, eopts.CellHeight, eopts.Labels = opts.cellW, opts.cellH, opts.labels

	var out map[export.Format][]byte
	render := func() error {
		out, err = export.RenderAll(ctx, d, formats, eopts)
		return err
	}
	if needsGraphviz(formats) {
		err = runWithSpinner(ctx, os.Stderr, "Rendering with graphviz", render)
	} else {
		err = render()
	}
	if err != nil {
		return err
	}
	sw.lap("rendered", "formats", len(formats))

	if len(formats) == 1 && formats[0] == export.FormatText && opts.output == "" {
		fmt.Print(string(out[export.FormatText]))
		return nil
	}

	base := basePath(opts.output, input)
	for _, f := range formats {
		path := base + "." + extension(f)
		if len(formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := writeOutput(path, out[f]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

func needsGraphviz(formats []export.Format) bool {
	for _, f := range formats {
		if f == export.FormatSVG || f == export.FormatPNG {
			return true
		}
	}
	return false
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "write %s", path)
	}
	return nil
}
