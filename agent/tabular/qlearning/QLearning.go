// Package qlearning implements tabular Q-Learning.
//
// A QLearning agent explores with a uniform behaviour policy over the
// playable actions of each state and learns the values of the greedy
// target policy. Once trained, Route walks the greedy target policy
// from a start state to a goal state.
package qlearning

import (
	"encoding/gob"
	"fmt"
	"os"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/warehouse/agent/tabular/policy"
	"github.com/samuelfneumann/warehouse/environment"
	ts "github.com/samuelfneumann/warehouse/timestep"
)

// QLearning implements the Q-Learning algorithm over a table of
// action values. A QLearning owns its table and is not safe for
// concurrent use.
type QLearning struct {
	*policy.Uniform // behaviour policy
	target          *policy.Greedy

	values        *mat.Dense
	gamma         float64
	alpha         float64
	maxRouteSteps int

	step     ts.TimeStep
	action   int
	nextStep ts.TimeStep
	tdError  float64
}

// New creates a new QLearning agent for env. All action selection of
// the behaviour policy draws from source.
func New(env environment.Tabular, c Config, source rand.Source) (*QLearning,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	states := env.NumStates()
	if actions := env.ActionSpec().Len(); actions != states {
		return nil, fmt.Errorf("new: tabular environments should have one "+
			"action per state (states = %d, actions = %d)", states, actions)
	}

	maxRouteSteps := c.MaxRouteSteps
	if maxRouteSteps == 0 {
		maxRouteSteps = 2 * states
	}

	values := mat.NewDense(states, states, nil)

	return &QLearning{
		Uniform:       policy.NewUniform(env, source),
		target:        policy.NewGreedy(values),
		values:        values,
		gamma:         c.Gamma,
		alpha:         c.Alpha,
		maxRouteSteps: maxRouteSteps,
	}, nil
}

// ObserveFirst observes and records the first episodic timestep
func (q *QLearning) ObserveFirst(t ts.TimeStep) error {
	if !t.First() {
		return fmt.Errorf("observeFirst: timestep %d is not the first "+
			"timestep", t.Number)
	}
	q.step = ts.TimeStep{}
	q.nextStep = t
	return nil
}

// Observe observes and records any timestep other than the first
// timestep
func (q *QLearning) Observe(action *mat.VecDense,
	nextStep ts.TimeStep) error {
	if action.Len() != 1 {
		return fmt.Errorf("observe: tabular methods should not have "+
			"multi-dimensional actions (action dim = %d)", action.Len())
	}
	q.step = q.nextStep
	q.action = int(action.AtVec(0))
	q.nextStep = nextStep
	return nil
}

// Step updates the action value of the last observed transition
func (q *QLearning) Step() error {
	if q.step.Observation == nil || q.nextStep.Observation == nil {
		return fmt.Errorf("step: no transition observed")
	}
	state := q.step.State()
	next := q.nextStep.State()

	// Q-learning bootstraps off the greedy value of the next state
	maxVal := floats.Max(q.values.RawRowView(next))
	current := q.values.At(state, q.action)

	q.tdError = q.nextStep.Reward + q.gamma*maxVal - current
	q.values.Set(state, q.action, current+q.alpha*q.tdError)

	return nil
}

// EndEpisode performs cleanup at the end of an episode
func (q *QLearning) EndEpisode() {
	q.step = ts.TimeStep{}
	q.nextStep = ts.TimeStep{}
}

// TdError returns the TD error of the last update made in Step
func (q *QLearning) TdError() float64 {
	return q.tdError
}

// Values returns a copy of the table of action values
func (q *QLearning) Values() *mat.Dense {
	return mat.DenseCopyOf(q.values)
}

// Target returns the greedy target policy
func (q *QLearning) Target() *policy.Greedy {
	return q.target
}

// Save saves the table of action values to filename using gob encoding
func (q *QLearning) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %v", err)
	}
	defer file.Close()

	data, err := q.values.MarshalBinary()
	if err != nil {
		return fmt.Errorf("save: could not marshal values: %v", err)
	}

	if err := gob.NewEncoder(file).Encode(data); err != nil {
		return fmt.Errorf("save: could not encode values: %v", err)
	}
	return nil
}

// LoadValues loads a table of action values saved by Save
func LoadValues(filename string) (*mat.Dense, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadValues: could not open file: %v", err)
	}
	defer file.Close()

	var data []byte
	if err := gob.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("loadValues: could not decode values: %v", err)
	}

	var values mat.Dense
	if err := values.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("loadValues: could not unmarshal values: %v",
			err)
	}
	return &values, nil
}
