// Package warehouse implements the warehouse routing environment: a
// fixed graph of named locations whose direct connections are described
// by a reward matrix, and a goal task that adds a large bonus on the
// goal location's self-transition.
package warehouse

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultGoalReward is the bonus placed on the goal state's
// self-transition in the reference warehouse
const DefaultGoalReward float64 = 1000.0

var (
	ErrInvalidConfig    = errors.New("invalid warehouse configuration")
	ErrInvalidState     = errors.New("invalid state")
	ErrNoPlayableAction = errors.New("no playable action in any state")
)

// Config describes a warehouse. Rewards[i][j] > 0 means location j can
// be reached directly from location i. Configs are JSON serializable.
type Config struct {
	Locations  []string    `json:"locations"`
	Rewards    [][]float64 `json:"rewards"`
	GoalReward float64     `json:"goal_reward"`
}

// ReferenceConfig returns the Config of the 12 location reference
// warehouse, locations A through L
func ReferenceConfig() Config {
	return Config{
		Locations: []string{
			"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L",
		},
		Rewards: [][]float64{
			{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			{1, 0, 1, 0, 0, 1, 0, 0, 0, 0, 0, 0},
			{0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0},
			{0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0},
			{0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0},
			{0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0, 1},
			{0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0},
			{0, 0, 0, 0, 0, 1, 0, 0, 1, 0, 1, 0},
			{0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1},
			{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 0},
		},
		GoalReward: DefaultGoalReward,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	n := len(c.Locations)
	if n == 0 {
		return fmt.Errorf("validate: no locations: %w", ErrInvalidConfig)
	}

	seen := make(map[string]bool, n)
	for _, loc := range c.Locations {
		if loc == "" {
			return fmt.Errorf("validate: empty location name: %w",
				ErrInvalidConfig)
		}
		if seen[loc] {
			return fmt.Errorf("validate: duplicate location %q: %w", loc,
				ErrInvalidConfig)
		}
		seen[loc] = true
	}

	if len(c.Rewards) != n {
		return fmt.Errorf("validate: rewards has %d rows, expected %d: %w",
			len(c.Rewards), n, ErrInvalidConfig)
	}
	maxEdge := 0.0
	for i, row := range c.Rewards {
		if len(row) != n {
			return fmt.Errorf("validate: rewards row %d has %d columns, "+
				"expected %d: %w", i, len(row), n, ErrInvalidConfig)
		}
		for j, r := range row {
			if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
				return fmt.Errorf("validate: reward (%d, %d) = %v must be "+
					"finite and non-negative: %w", i, j, r, ErrInvalidConfig)
			}
		}
		maxEdge = math.Max(maxEdge, floats.Max(row))
	}

	// The bonus must dominate the total reward of any simple path
	if bound := maxEdge * float64(n); c.GoalReward <= bound {
		return fmt.Errorf("validate: goal reward %v must exceed %v: %w",
			c.GoalReward, bound, ErrInvalidConfig)
	}

	return nil
}

// Warehouse holds the static topology of a warehouse: the bijective
// mapping between location names and states, and the base reward
// matrix. A Warehouse is immutable and safe for concurrent use.
type Warehouse struct {
	locations  []string
	states     map[string]int
	rewards    *mat.Dense
	goalReward float64
}

// New creates a new Warehouse from a Config
func New(c Config) (*Warehouse, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	n := len(c.Locations)
	locations := make([]string, n)
	copy(locations, c.Locations)

	states := make(map[string]int, n)
	for state, loc := range locations {
		states[loc] = state
	}

	rewards := mat.NewDense(n, n, nil)
	for i, row := range c.Rewards {
		rewards.SetRow(i, row)
	}

	return &Warehouse{
		locations:  locations,
		states:     states,
		rewards:    rewards,
		goalReward: c.GoalReward,
	}, nil
}

// Reference returns the reference warehouse
func Reference() *Warehouse {
	w, err := New(ReferenceConfig())
	if err != nil {
		panic(fmt.Sprintf("reference: %v", err))
	}
	return w
}

// Len returns the number of locations (states) in the warehouse
func (w *Warehouse) Len() int {
	return len(w.locations)
}

// Locations returns the location names ordered by state
func (w *Warehouse) Locations() []string {
	locations := make([]string, len(w.locations))
	copy(locations, w.locations)
	return locations
}

// State returns the state of a location and whether the location exists
func (w *Warehouse) State(location string) (int, bool) {
	state, ok := w.states[location]
	return state, ok
}

// Location returns the name of the location at state
func (w *Warehouse) Location(state int) (string, error) {
	if !w.valid(state) {
		return "", fmt.Errorf("location: state %d: %w", state,
			ErrInvalidState)
	}
	return w.locations[state], nil
}

// GoalReward returns the bonus placed on a goal's self-transition
func (w *Warehouse) GoalReward() float64 {
	return w.goalReward
}

// Connected returns whether to can be reached directly from from in
// the base reward matrix
func (w *Warehouse) Connected(from, to int) bool {
	if !w.valid(from) || !w.valid(to) {
		return false
	}
	return w.rewards.At(from, to) > 0
}

// Rewards returns a copy of the base reward matrix
func (w *Warehouse) Rewards() *mat.Dense {
	return mat.DenseCopyOf(w.rewards)
}

// RewardsForGoal returns a copy of the base reward matrix with the
// goal's self-transition set to the goal reward. The base matrix is
// never modified.
func (w *Warehouse) RewardsForGoal(goal int) (*mat.Dense, error) {
	if !w.valid(goal) {
		return nil, fmt.Errorf("rewardsForGoal: goal %d: %w", goal,
			ErrInvalidState)
	}

	rewards := mat.DenseCopyOf(w.rewards)
	rewards.Set(goal, goal, w.goalReward)
	return rewards, nil
}

func (w *Warehouse) valid(state int) bool {
	return state >= 0 && state < len(w.locations)
}
