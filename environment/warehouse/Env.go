package warehouse

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/warehouse/environment"
	ts "github.com/samuelfneumann/warehouse/timestep"
)

// Env is the goal task of reaching a single location in a Warehouse.
//
// Each episode consists of a single transition: Reset samples a state
// uniformly at random and Step moves to a playable next state, receiving
// the goal-augmented reward of that transition. States without playable
// actions are re-sampled by Reset, so every episode can take a step.
type Env struct {
	rewards  *mat.Dense // goal-augmented copy, owned by the Env
	goal     int
	playable [][]int
	starter  env.Starter
	ender    env.Ender

	currentStep ts.TimeStep
}

// NewEnv returns a new Env for reaching goal in the Warehouse w. All
// randomness is drawn from source, so two Envs constructed with equally
// seeded sources produce the same episodes.
func NewEnv(w *Warehouse, goal int, source rand.Source) (*Env, ts.TimeStep,
	error) {
	rewards, err := w.RewardsForGoal(goal)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newEnv: %w", err)
	}

	n := w.Len()
	playable := make([][]int, n)
	anyPlayable := false
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if rewards.At(i, j) > 0 {
				playable[i] = append(playable[i], j)
			}
		}
		anyPlayable = anyPlayable || len(playable[i]) > 0
	}
	if !anyPlayable {
		return nil, ts.TimeStep{}, fmt.Errorf("newEnv: %w",
			ErrNoPlayableAction)
	}

	e := &Env{
		rewards:  rewards,
		goal:     goal,
		playable: playable,
		starter:  env.NewCategoricalStarter(n, source),
		ender:    env.NewStepLimit(1),
	}

	step, err := e.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newEnv: %w", err)
	}
	return e, step, nil
}

// Start samples a starting state which has at least one playable action
func (e *Env) Start() *mat.VecDense {
	for {
		start := e.starter.Start()
		if len(e.playable[int(start.AtVec(0))]) > 0 {
			return start
		}
	}
}

// Reset starts a new episode
func (e *Env) Reset() (ts.TimeStep, error) {
	step := ts.New(ts.First, 0, 1.0, e.Start(), 0)
	e.currentStep = step

	return step, nil
}

// Step takes action, the index of the next state, in the environment
func (e *Env) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	if action.Len() != 1 {
		return ts.TimeStep{}, false, fmt.Errorf("step: actions must be " +
			"1-dimensional")
	}

	state := e.currentStep.State()
	a := int(action.AtVec(0))
	if a < 0 || a >= e.NumStates() || e.rewards.At(state, a) <= 0 {
		return ts.TimeStep{}, false, fmt.Errorf("step: action %d is not "+
			"playable from state %d", a, state)
	}

	reward := e.GetReward(state, a)
	nextState := mat.NewVecDense(1, []float64{float64(a)})
	nextStep := ts.New(ts.Mid, reward, 1.0, nextState,
		e.currentStep.Number+1)

	last := e.ender.End(&nextStep)
	e.currentStep = nextStep

	return nextStep, last, nil
}

// CurrentTimeStep returns the last TimeStep generated by the Env
func (e *Env) CurrentTimeStep() ts.TimeStep {
	return e.currentStep
}

// GetReward returns the goal-augmented reward for moving from state to
// action
func (e *Env) GetReward(state, action int) float64 {
	return e.rewards.At(state, action)
}

// AtGoal returns whether state is the goal state
func (e *Env) AtGoal(state int) bool {
	return state == e.goal
}

// Goal returns the goal state
func (e *Env) Goal() int {
	return e.goal
}

// NumStates returns the number of states in the environment
func (e *Env) NumStates() int {
	return len(e.playable)
}

// Playable returns the states reachable from state in a single step.
// The returned slice must not be modified.
func (e *Env) Playable(state int) []int {
	return e.playable[state]
}

// Rewards returns a copy of the goal-augmented reward matrix
func (e *Env) Rewards() *mat.Dense {
	return mat.DenseCopyOf(e.rewards)
}

// ObservationSpec returns the observation specification of the
// environment
func (e *Env) ObservationSpec() env.Spec {
	return env.NewTabularSpec(env.Observation, e.NumStates())
}

// ActionSpec returns the action specification of the environment
func (e *Env) ActionSpec() env.Spec {
	return env.NewTabularSpec(env.Action, e.NumStates())
}
