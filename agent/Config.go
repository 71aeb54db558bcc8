package agent

import "github.com/samuelfneumann/warehouse/environment"

// Type represents a specific type of an agent Config.
type Type string

const (
	QLearningTabular Type = "QLearning-Tabular"
)

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes. All
	// randomness used by the agent is derived from seed.
	CreateAgent(env environment.Environment, seed uint64) (Agent, error)

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the type of agent constructed by the Config
	Type() Type
}
