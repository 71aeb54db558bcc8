// Package experiment implements functionality for running an experiment
package experiment

import (
	"github.com/samuelfneumann/warehouse/experiment/trackers"
	ts "github.com/samuelfneumann/warehouse/timestep"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments will track environment TimeSteps, caching each TimeStep
// in RAM to be later saved to disk. The Save() function
// will then take all cached data and save it to disk. This is usually
// performed after an experiment has been run. The Run() method will
// run all episodes until the episode limit is reached. The RunEpisode()
// function will run a single episode.
//
// In order to save data, Experiments use Trackers. Trackers determine
// which data generated during the experiment is saved. Experiments will
// send each TimeStep to Trackers using the Tracker's Track() method.
type Experiment interface {
	Run() error
	RunEpisode() (bool, error) // Returns whether the episode limit was reached

	// Tracks current timestep by sending it to Trackers
	track(ts.TimeStep)

	// Save all tracked data to disk
	Save() error

	// Adds a new trackers.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t trackers.Tracker)

	// Saves the current state of all agents
	checkpoint() error
}
