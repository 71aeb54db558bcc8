package qlearning

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/warehouse/agent/tabular/policy"
)

// ErrRouteStalled is returned when a greedy walk does not reach its
// goal within the step bound. This indicates insufficient training or
// a goal that cannot be reached from the start state.
var ErrRouteStalled = errors.New("route extraction stalled")

// StalledError describes a greedy walk that exceeded its step bound.
// StalledError wraps ErrRouteStalled.
type StalledError struct {
	Start, Goal int
	Steps       int
	Walk        []int // states visited before stalling
}

func (s *StalledError) Error() string {
	return fmt.Sprintf("no route from %d to %d within %d steps (walk %v)",
		s.Start, s.Goal, s.Steps, s.Walk)
}

func (s *StalledError) Unwrap() error {
	return ErrRouteStalled
}

// walkState is the state of a greedy walk. Reached and Stalled are
// terminal.
type walkState int

const (
	walking walkState = iota
	reached
	stalled
)

// walker walks a greedy policy toward a goal state
type walker struct {
	policy   *policy.Greedy
	goal     int
	maxSteps int

	state   walkState
	current int
	route   []int
}

func newWalker(p *policy.Greedy, start, goal, maxSteps int) *walker {
	w := &walker{
		policy:   p,
		goal:     goal,
		maxSteps: maxSteps,
		current:  start,
		route:    []int{start},
	}
	if start == goal {
		w.state = reached
	}
	return w
}

// advance takes a single greedy step, returning the new walk state
func (w *walker) advance() walkState {
	if w.state != walking {
		return w.state
	}
	if len(w.route)-1 >= w.maxSteps {
		w.state = stalled
		return w.state
	}

	w.current = w.policy.Action(w.current)
	w.route = append(w.route, w.current)

	if w.current == w.goal {
		w.state = reached
	}
	return w.state
}

// Walk follows the greedy policy p from start until goal is reached,
// returning the visited states including start and goal. If goal is not
// reached within maxSteps steps, a *StalledError is returned. Walk is
// deterministic given the values underlying p.
func Walk(p *policy.Greedy, start, goal, maxSteps int) ([]int, error) {
	w := newWalker(p, start, goal, maxSteps)
	for w.advance() == walking {
	}

	if w.state == stalled {
		return nil, &StalledError{
			Start: start,
			Goal:  goal,
			Steps: maxSteps,
			Walk:  w.route,
		}
	}
	return w.route, nil
}

// Route returns the greedy route of states from start to goal using the
// learned action values
func (q *QLearning) Route(start, goal int) ([]int, error) {
	states, _ := q.values.Dims()
	if start < 0 || start >= states {
		return nil, fmt.Errorf("route: start state %d out of range [0, %d)",
			start, states)
	}
	if goal < 0 || goal >= states {
		return nil, fmt.Errorf("route: goal state %d out of range [0, %d)",
			goal, states)
	}

	route, err := Walk(q.target, start, goal, q.maxRouteSteps)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}
	return route, nil
}
