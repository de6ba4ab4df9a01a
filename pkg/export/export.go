package export

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/boxwire/pkg/diagram"
	"github.com/matzehuels/boxwire/pkg/errors"
	bwio "github.com/matzehuels/boxwire/pkg/io"
	"github.com/matzehuels/boxwire/pkg/observability"
)

// Format is an output format.
type Format string

const (
	FormatText Format = "text"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatDOT, FormatSVG, FormatPNG, FormatJSON}

// ParseFormat parses a format name or file extension ("svg", ".svg", "txt").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "text", "txt":
		return FormatText, nil
	case "dot", "gv":
		return FormatDOT, nil
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Options configures rendering.
type Options struct {
	CellWidth  float64 // text: pixels per column, default 8
	CellHeight float64 // text: pixels per row, default 16
	DotRadius  float64 // dot/svg/png: port radius in pixels, default 1
	Labels     bool    // draw box labels
}

func (o Options) withDefaults() Options {
	if o.CellWidth <= 0 {
		o.CellWidth = 8
	}
	if o.CellHeight <= 0 {
		o.CellHeight = 16
	}
	if o.DotRadius <= 0 {
		o.DotRadius = 1
	}
	return o
}

// Render produces one format.
func Render(ctx context.Context, d *diagram.Diagram, f Format, opts Options) ([]byte, error) {
	out, err := RenderAll(ctx, d, []Format{f}, opts)
	if err != nil {
		return nil, err
	}
	return out[f], nil
}

// RenderAll produces every requested format. Diagram reads happen before
// any goroutine starts, so d is never read concurrently.
func RenderAll(ctx context.Context, d *diagram.Diagram, formats []Format, opts Options) (map[Format][]byte, error) {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	hooks := observability.Export()
	hooks.OnExportStart(ctx, names)
	start := time.Now()

	out, err := renderAll(ctx, d, formats, opts)
	hooks.OnExportComplete(ctx, names, time.Since(start), err)
	return out, err
}

func renderAll(ctx context.Context, d *diagram.Diagram, formats []Format, opts Options) (map[Format][]byte, error) {
	var (
		mu  sync.Mutex
		out = make(map[Format][]byte, len(formats))
		dot string
	)
	for _, f := range formats {
		switch f {
		case FormatText:
			out[f] = []byte(Rasterize(d, opts).String())
		case FormatJSON:
			data, err := bwio.Marshal(d)
			if err != nil {
				return nil, err
			}
			out[f] = data
		case FormatDOT, FormatSVG, FormatPNG:
			if dot == "" {
				dot = ToDOT(d, opts)
			}
			if f == FormatDOT {
				out[f] = []byte(dot)
			}
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, f := range formats {
		var render func(context.Context, string) ([]byte, error)
		switch f {
		case FormatSVG:
			render = RenderSVG
		case FormatPNG:
			render = RenderPNG
		default:
			continue
		}
		g.Go(func() error {
			data, err := render(ctx, dot)
			if err != nil {
				return err
			}
			mu.Lock()
			out[f] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
