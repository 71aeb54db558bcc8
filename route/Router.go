// Package route answers routing queries over a warehouse. Each query
// trains a fresh Q-Learning agent toward its goal location and walks
// the learned greedy policy from the start location.
package route

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/samuelfneumann/warehouse/agent"
	"github.com/samuelfneumann/warehouse/agent/tabular/qlearning"
	"github.com/samuelfneumann/warehouse/environment/warehouse"
	"github.com/samuelfneumann/warehouse/experiment"
)

// ErrUnknownLocation is returned when a query names a location that is
// not in the warehouse
var ErrUnknownLocation = errors.New("unknown location")

// Walker is an Agent that can extract a route of states once trained
type Walker interface {
	agent.Agent
	Route(start, goal int) ([]int, error)
}

// Router answers route queries over a single warehouse. Queries share
// no mutable state, so a Router is safe for concurrent use.
type Router struct {
	warehouse *warehouse.Warehouse
	agentConf agent.Config
	episodes  int
	seed      uint64
}

// New returns a new Router over w which trains agents described by c.
// Every query seeds its training with seed, so repeated queries return
// identical routes.
func New(w *warehouse.Warehouse, c qlearning.Config, seed uint64) (*Router,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	return &Router{
		warehouse: w,
		agentConf: c,
		episodes:  c.Episodes,
		seed:      seed,
	}, nil
}

// Locations returns the names of all locations in the warehouse
func (r *Router) Locations() []string {
	return r.warehouse.Locations()
}

// Route returns the learned route from start to end, including both.
// If start == end, the route is just [start].
func (r *Router) Route(start, end string) ([]string, error) {
	states, err := r.states(start, end)
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}

	route, err := r.route(states[0], states[1])
	if err != nil {
		return nil, fmt.Errorf("route: %w", err)
	}
	return route, nil
}

// BestRoute returns the route from start to end passing through via.
// The legs start -> via and via -> end are trained independently and
// concurrently, and joined at via.
func (r *Router) BestRoute(start, via, end string) ([]string, error) {
	states, err := r.states(start, via, end)
	if err != nil {
		return nil, fmt.Errorf("bestRoute: %w", err)
	}

	var first, second []string
	var g errgroup.Group
	g.Go(func() error {
		var err error
		first, err = r.route(states[0], states[1])
		return err
	})
	g.Go(func() error {
		var err error
		second, err = r.route(states[1], states[2])
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("bestRoute: %w", err)
	}

	return append(first, second[1:]...), nil
}

// states looks up the state of each location, failing on the first
// unknown location
func (r *Router) states(locations ...string) ([]int, error) {
	states := make([]int, len(locations))
	for i, loc := range locations {
		state, ok := r.warehouse.State(loc)
		if !ok {
			return nil, fmt.Errorf("%q: %w", loc, ErrUnknownLocation)
		}
		states[i] = state
	}
	return states, nil
}

// route trains a new agent to reach goal and returns its greedy route
// from start
func (r *Router) route(start, goal int) ([]string, error) {
	if start == goal {
		return r.names([]int{start})
	}

	env, _, err := warehouse.NewEnv(r.warehouse, goal, rand.NewSource(r.seed))
	if err != nil {
		return nil, err
	}

	a, err := r.agentConf.CreateAgent(env, r.seed)
	if err != nil {
		return nil, err
	}
	walker, ok := a.(Walker)
	if !ok {
		return nil, fmt.Errorf("agent of type %T cannot extract routes", a)
	}

	if err := experiment.NewOnline(env, a, r.episodes, nil, nil).Run(); err != nil {
		return nil, err
	}

	states, err := walker.Route(start, goal)
	if err != nil {
		return nil, err
	}
	return r.names(states)
}

// names maps states to location names
func (r *Router) names(states []int) ([]string, error) {
	route := make([]string, len(states))
	for i, state := range states {
		loc, err := r.warehouse.Location(state)
		if err != nil {
			return nil, err
		}
		route[i] = loc
	}
	return route, nil
}
