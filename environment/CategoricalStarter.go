package environment

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CategoricalStarter returns starting states as 1-vectors sampled from
// a uniform categorical distribution over (0, 1, 2, ... N-1).
type CategoricalStarter struct {
	rand distuv.Categorical
}

// NewCategoricalStarter returns a new CategoricalStarter sampling
// uniformly from (0, 1, 2, ... states-1) using the argument source
func NewCategoricalStarter(states int, source rand.Source) CategoricalStarter {
	weights := make([]float64, states)
	for i := range weights {
		weights[i] = 1.0 / float64(states)
	}

	return CategoricalStarter{distuv.NewCategorical(weights, source)}
}

// Start returns a starting state vector
func (c CategoricalStarter) Start() *mat.VecDense {
	return mat.NewVecDense(1, []float64{c.rand.Rand()})
}
