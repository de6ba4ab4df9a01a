package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxwire/pkg/layout"
	"github.com/matzehuels/boxwire/pkg/route"
)

// routeCommand prints the default path for a pair of port sides and,
// given an end offset, the points it renders to.
func (c *CLI) routeCommand() *cobra.Command {
	var (
		dx, dy, stub float64
		reverse      bool
	)

	cmd := &cobra.Command{
		Use:   "route FROM TO",
		Short: "Print the default wire path between two port sides",
		Long: `Print the default wire path from a port on side FROM to a port on side TO.

With --dx and --dy the path is also rendered for an end port at that offset
from the start port, one point per line.

With --reverse the path is printed as walked from the TO port back to the
FROM port: segments in reverse order, each negated.`,
		Example: `  boxwire route bottom top
  boxwire route right left --dx 200 --dy 80
  boxwire route bottom top --reverse --dx 100 --dy 200`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeSides,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := layout.ParseSide(args[0])
			if err != nil {
				return err
			}
			to, err := layout.ParseSide(args[1])
			if err != nil {
				return err
			}

			ends := route.Ends{From: from, To: to, Stub: c.Config.Route.Stub}
			if cmd.Flags().Changed("stub") {
				ends.Stub = stub
			}
			path := route.Default(from, to)
			start, end := layout.Point{}, layout.Point{X: dx, Y: dy}
			if reverse {
				path, ends = path.Reverse(), ends.Reverse()
				start, end = end, start
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, path)
			if !cmd.Flags().Changed("dx") && !cmd.Flags().Changed("dy") {
				return nil
			}
			for _, p := range path.Points(ends, start, end) {
				fmt.Fprintf(out, "%g %g\n", p.X, p.Y)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&dx, "dx", 0, "end port x offset in pixels")
	cmd.Flags().Float64Var(&dy, "dy", 0, "end port y offset in pixels")
	cmd.Flags().Float64Var(&stub, "stub", route.DefaultStub, "stub length in pixels")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "walk the path from the TO port")

	return cmd
}
