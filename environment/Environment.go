// Package environment outlines the interfaces and structs needed to
// implement concrete tabular environments
package environment

import (
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/warehouse/timestep"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when an episode should end. If the episode should
// end, End marks the argument TimeStep as the last step.
type Ender interface {
	End(t *timestep.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some
// environment
type Task interface {
	GetReward(state, action int) float64
	AtGoal(state int) bool
}

// Environment implements a simulated environment, which includes a Task
// to complete
type Environment interface {
	Task
	Starter
	Reset() (timestep.TimeStep, error) // Resets between episodes
	Step(action *mat.VecDense) (timestep.TimeStep, bool, error)
	CurrentTimeStep() timestep.TimeStep
	ObservationSpec() Spec
	ActionSpec() Spec
}

// Tabular is an Environment with a finite set of integer states where
// actions name the next state directly.
type Tabular interface {
	Environment

	// NumStates returns the number of states in the environment
	NumStates() int

	// Playable returns the actions that can be taken from state, in
	// increasing order
	Playable(state int) []int
}
