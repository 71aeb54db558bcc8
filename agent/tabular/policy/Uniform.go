package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/warehouse/environment"
	"github.com/samuelfneumann/warehouse/timestep"
)

// Uniform implements a behaviour policy selecting uniformly at random
// among the playable actions of the current state
type Uniform struct {
	env    environment.Tabular
	source rand.Source
}

// NewUniform returns a new Uniform policy over the playable actions of
// env, sampling with source
func NewUniform(env environment.Tabular, source rand.Source) *Uniform {
	return &Uniform{env, source}
}

// SelectAction selects an action uniformly from the playable actions in
// the state of the argument TimeStep. SelectAction panics if the state
// has no playable actions.
func (u *Uniform) SelectAction(t timestep.TimeStep) *mat.VecDense {
	state := t.State()
	playable := u.env.Playable(state)
	if len(playable) == 0 {
		panic(fmt.Sprintf("selectAction: no playable actions in state %d",
			state))
	}

	// Construct a categorical distribution over actions with equal
	// weight on each playable action
	weights := make([]float64, u.env.NumStates())
	for _, a := range playable {
		weights[a] = 1.0
	}
	dist := distuv.NewCategorical(weights, u.source)

	return mat.NewVecDense(1, []float64{dist.Rand()})
}
