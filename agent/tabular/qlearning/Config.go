package qlearning

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/warehouse/agent"
	"github.com/samuelfneumann/warehouse/environment"
)

// Config represents a configuration for the QLearning agent. Configs
// are JSON serializable.
type Config struct {
	Gamma    float64 `json:"gamma"` // discount factor
	Alpha    float64 `json:"alpha"` // learning rate
	Episodes int     `json:"episodes"`

	// MaxRouteSteps bounds the number of greedy steps taken when
	// extracting a route. If 0, twice the number of states is used.
	MaxRouteSteps int `json:"max_route_steps"`
}

// DefaultConfig returns the reference configuration
func DefaultConfig() Config {
	return Config{
		Gamma:    0.75,
		Alpha:    0.9,
		Episodes: 1000,
	}
}

// CreateAgent creates the agent from the Config. The environment must
// be an environment.Tabular. Q-values are always initialized to zero.
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	tabular, ok := env.(environment.Tabular)
	if !ok {
		return nil, fmt.Errorf("createAgent: environment of type %T is not "+
			"tabular", env)
	}

	return New(tabular, c, rand.NewSource(seed))
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Gamma < 0 || c.Gamma >= 1 {
		return fmt.Errorf("gamma must be in [0, 1) (got %v)", c.Gamma)
	}
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in (0, 1] (got %v)", c.Alpha)
	}
	if c.Episodes <= 0 {
		return fmt.Errorf("episodes must be positive (got %d)", c.Episodes)
	}
	if c.MaxRouteSteps < 0 {
		return fmt.Errorf("max route steps cannot be negative (got %d)",
			c.MaxRouteSteps)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.QLearningTabular
}
