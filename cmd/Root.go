// Package cmd implements the warehouse command line interface
package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

// defaultSeed seeds training when neither a config file nor a flag
// provides a seed
const defaultSeed uint64 = 2024

// options holds the flags shared by all commands
type options struct {
	configFile string
	seed       uint64
	gamma      float64
	alpha      float64
	episodes   int
	maxSteps   int
	noColor    bool
}

// newRootCommand returns the root warehouse command with all
// subcommands registered, binding shared flags to o
func newRootCommand(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "warehouse",
		Short: "Learn shortest routes through a warehouse with Q-Learning",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			log.SetPrefix("warehouse: ")
		},
		SilenceUsage: true,
	}

	f := root.PersistentFlags()
	f.StringVar(&o.configFile, "config", "", "JSON configuration file")
	f.Uint64Var(&o.seed, "seed", defaultSeed, "seed for training")
	f.Float64Var(&o.gamma, "gamma", 0, "discount factor (overrides config)")
	f.Float64Var(&o.alpha, "alpha", 0, "learning rate (overrides config)")
	f.IntVar(&o.episodes, "episodes", 0,
		"number of training episodes (overrides config)")
	f.IntVar(&o.maxSteps, "max-steps", 0,
		"maximum route length before a route stalls (overrides config)")
	f.BoolVar(&o.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(
		routeCommand(o),
		bestRouteCommand(o),
		locationsCommand(o),
		trainCommand(o),
		plotCommand(o),
		serveCommand(o),
	)
	return root
}

// Execute runs the root command
func Execute() error {
	return newRootCommand(&options{}).Execute()
}
