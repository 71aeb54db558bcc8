package experiment

import (
	"fmt"

	"github.com/samuelfneumann/warehouse/agent"
	env "github.com/samuelfneumann/warehouse/environment"
	"github.com/samuelfneumann/warehouse/experiment/checkpointer"
	"github.com/samuelfneumann/warehouse/experiment/trackers"
	ts "github.com/samuelfneumann/warehouse/timestep"
)

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
type Online struct {
	env.Environment
	agent.Agent
	maxEpisodes     int
	currentEpisodes int
	trackers        []trackers.Tracker
	checkpointers   []checkpointer.Checkpointer
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The episodes parameter determines how
// many episodes the experiment is run for, t is a slice of
// trackers.Tracker which determine what data is saved, and c is a slice
// of checkpointers which save the agent during the experiment.
func NewOnline(e env.Environment, a agent.Agent, episodes int,
	t []trackers.Tracker, c []checkpointer.Checkpointer) *Online {
	return &Online{
		Environment:   e,
		Agent:         a,
		maxEpisodes:   episodes,
		trackers:      t,
		checkpointers: c,
	}
}

// Register registers a trackers.Tracker with an Experiment so that
// data generated during the experiment can be tracked and saved
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// Episodes returns the number of episodes run so far
func (o *Online) Episodes() int {
	return o.currentEpisodes
}

// RunEpisode runs a single episode of the experiment
func (o *Online) RunEpisode() (bool, error) {
	if o.currentEpisodes >= o.maxEpisodes {
		return true, nil
	}

	step, err := o.Environment.Reset()
	if err != nil {
		return false, fmt.Errorf("runEpisode: could not reset: %v", err)
	}
	if err := o.Agent.ObserveFirst(step); err != nil {
		return false, fmt.Errorf("runEpisode: %v", err)
	}
	o.track(step)

	for !step.Last() {
		// Select action, step in environment
		action := o.Agent.SelectAction(step)
		step, _, err = o.Environment.Step(action)
		if err != nil {
			return false, fmt.Errorf("runEpisode: %v", err)
		}

		// Observe the timestep and step the agent
		if err := o.Agent.Observe(action, step); err != nil {
			return false, fmt.Errorf("runEpisode: %v", err)
		}
		if err := o.Agent.Step(); err != nil {
			return false, fmt.Errorf("runEpisode: %v", err)
		}

		// Cache the environment step in each Tracker
		o.track(step)
	}
	o.Agent.EndEpisode()
	o.currentEpisodes++

	if err := o.checkpoint(); err != nil {
		return false, fmt.Errorf("runEpisode: %v", err)
	}

	// Return whether or not the episode limit has been reached
	return o.currentEpisodes >= o.maxEpisodes, nil
}

// Run runs the entire experiment for all episodes
func (o *Online) Run() error {
	ended := false

	for !ended {
		var err error
		if ended, err = o.RunEpisode(); err != nil {
			return err
		}
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, tracker := range o.trackers {
		if err := tracker.Save(); err != nil {
			return err
		}
	}
	return nil
}

// track tracks the current timestep by caching its data in each tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}

// checkpoint checkpoints the agent with each checkpointer
func (o *Online) checkpoint() error {
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(o.currentEpisodes); err != nil {
			return err
		}
	}
	return nil
}
