// Package policy implements tabular policies, which select actions
// using a table of action values indexed by (state, action)
package policy

import (
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/warehouse/timestep"
	"github.com/samuelfneumann/warehouse/utils/matutils"
)

// Greedy implements a deterministic greedy policy over a table of
// action values. Ties are broken toward the lowest action index.
type Greedy struct {
	values *mat.Dense
}

// NewGreedy returns a new Greedy policy selecting actions from values.
// The policy reads values directly, so updates made to values by a
// Learner are reflected in the actions selected.
func NewGreedy(values *mat.Dense) *Greedy {
	return &Greedy{values}
}

// SelectAction selects the greedy action in the state of the argument
// TimeStep
func (g *Greedy) SelectAction(t timestep.TimeStep) *mat.VecDense {
	action := g.Action(t.State())
	return mat.NewVecDense(1, []float64{float64(action)})
}

// Action returns the index of the action with the strictly greatest
// value in state, scanning from the lowest index
func (g *Greedy) Action(state int) int {
	return matutils.MaxVec(g.values.RowView(state))
}
