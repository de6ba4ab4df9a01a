package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxwire/internal/server"
	"github.com/matzehuels/boxwire/pkg/gesture"
)

// serveCommand exposes the store over HTTP until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored diagrams over HTTP",
		Long: `Serve the configured diagram store over HTTP.

Routes:
  GET    /healthz
  GET    /diagrams
  GET    /diagrams/{name}
  PUT    /diagrams/{name}
  DELETE /diagrams/{name}
  POST   /diagrams/{name}/replay     (TOML gesture script body, ?dry_run=true)
  GET    /diagrams/{name}/render.{format}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := server.New(st,
				server.WithLogger(c.Logger),
				server.WithDiagramOptions(c.diagramOptions()...),
				server.WithGestureOptions(gesture.WithLogger(c.Logger)),
				server.WithExportOptions(c.Config.ExportOptions()),
			)
			c.Logger.Info("serving diagrams", "store", c.Config.Store.Backend, "addr", c.Config.Server.Addr)
			return srv.ListenAndServe(ctx, c.Config.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}
