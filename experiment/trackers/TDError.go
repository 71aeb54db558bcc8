package trackers

import (
	"math"

	"github.com/samuelfneumann/warehouse/agent"
	ts "github.com/samuelfneumann/warehouse/timestep"
)

// TDError tracks the absolute TD error of the last update a Learner
// made in each episode. A run of near-zero TD errors indicates the
// Learner's values have stabilized.
type TDError struct {
	learner  agent.TdErrorer
	errors   []float64
	filename string
}

// NewTDError returns a new TDError Tracker registered with learner
func NewTDError(learner agent.TdErrorer, filename string) *TDError {
	return &TDError{learner: learner, filename: filename}
}

// Track caches the absolute TD error of the learner whenever the
// argument TimeStep ends an episode
func (t *TDError) Track(step ts.TimeStep) {
	if step.Last() {
		t.errors = append(t.errors, math.Abs(t.learner.TdError()))
	}
}

// Data returns the absolute TD errors tracked so far
func (t *TDError) Data() []float64 {
	data := make([]float64, len(t.errors))
	copy(data, t.errors)
	return data
}

// Save saves the data tracked by the TDError Tracker to disk.
func (t *TDError) Save() error {
	return save(t.filename, t.errors)
}
