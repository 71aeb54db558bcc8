package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
)

func routeCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "route START END",
		Short: "Print the learned route between two locations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.load(cmd)
			if err != nil {
				return err
			}
			r, err := s.router()
			if err != nil {
				return err
			}

			path, err := r.Route(args[0], args[1])
			if err != nil {
				return err
			}
			printRoute(cmd.OutOrStdout(), aurora.NewAurora(!o.noColor), path)
			return nil
		},
	}
}

func bestRouteCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "best-route START VIA END",
		Short: "Print the learned route between two locations through a third",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.load(cmd)
			if err != nil {
				return err
			}
			r, err := s.router()
			if err != nil {
				return err
			}

			path, err := r.BestRoute(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			printRoute(cmd.OutOrStdout(), aurora.NewAurora(!o.noColor), path)
			return nil
		},
	}
}

func locationsCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List the locations of the warehouse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.load(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				strings.Join(s.warehouse.Locations(), " "))
			return nil
		},
	}
}

// printRoute prints a route with its start and end highlighted
func printRoute(out io.Writer, au aurora.Aurora, path []string) {
	for i, loc := range path {
		switch {
		case i == 0:
			fmt.Fprint(out, au.Green(loc).Bold())
		case i == len(path)-1:
			fmt.Fprint(out, " -> ", au.Blue(loc).Bold())
		default:
			fmt.Fprint(out, " -> ", loc)
		}
	}
	fmt.Fprintf(out, " (%d steps)\n", len(path)-1)
}
