package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/warehouse/agent/tabular/qlearning"
	"github.com/samuelfneumann/warehouse/environment/warehouse"
	"github.com/samuelfneumann/warehouse/route"
)

// fileConfig is the layout of a JSON configuration file. Fields not
// present in the file keep their reference values.
type fileConfig struct {
	Warehouse *warehouse.Config `json:"warehouse"`
	Agent     *qlearning.Config `json:"agent"`
	Seed      *uint64           `json:"seed"`
}

// settings are the resolved settings of a command
type settings struct {
	warehouse *warehouse.Warehouse
	agent     qlearning.Config
	seed      uint64
}

// load resolves settings from the reference configuration, then the
// config file, then any flags set on cmd
func (o *options) load(cmd *cobra.Command) (settings, error) {
	wc := warehouse.ReferenceConfig()
	ac := qlearning.DefaultConfig()
	seed := defaultSeed

	if o.configFile != "" {
		data, err := os.ReadFile(o.configFile)
		if err != nil {
			return settings{}, fmt.Errorf("could not read config: %v", err)
		}

		fc := fileConfig{Warehouse: &wc, Agent: &ac, Seed: &seed}
		if err := json.Unmarshal(data, &fc); err != nil {
			return settings{}, fmt.Errorf("could not parse config %v: %v",
				o.configFile, err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		seed = o.seed
	}
	if flags.Changed("gamma") {
		ac.Gamma = o.gamma
	}
	if flags.Changed("alpha") {
		ac.Alpha = o.alpha
	}
	if flags.Changed("episodes") {
		ac.Episodes = o.episodes
	}
	if flags.Changed("max-steps") {
		ac.MaxRouteSteps = o.maxSteps
	}

	if err := ac.Validate(); err != nil {
		return settings{}, fmt.Errorf("invalid agent config: %v", err)
	}
	w, err := warehouse.New(wc)
	if err != nil {
		return settings{}, err
	}

	return settings{warehouse: w, agent: ac, seed: seed}, nil
}

// router returns a route.Router configured by s
func (s settings) router() (*route.Router, error) {
	return route.New(s.warehouse, s.agent, s.seed)
}
