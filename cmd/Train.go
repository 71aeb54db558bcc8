package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/warehouse/agent/tabular/qlearning"
	"github.com/samuelfneumann/warehouse/environment/warehouse"
	"github.com/samuelfneumann/warehouse/experiment"
	"github.com/samuelfneumann/warehouse/experiment/checkpointer"
	"github.com/samuelfneumann/warehouse/experiment/trackers"
	"github.com/samuelfneumann/warehouse/utils/matutils"
	"github.com/samuelfneumann/warehouse/utils/progressbar"
)

const progressBarWidth = 40

// training is a single Q-Learning run toward one goal location
type training struct {
	learner  *qlearning.QLearning
	exp      *experiment.Online
	episodes int
	returns  *trackers.Return
	tdErrors *trackers.TDError
}

// newTraining constructs a training run toward goal. Returns and TD
// errors are always tracked, and saved by save to returnsFile and
// tdErrorsFile if these are non-empty. If checkpointEvery > 0, the
// action values are saved to dir every checkpointEvery episodes.
func newTraining(s settings, goal, returnsFile, tdErrorsFile string,
	checkpointEvery int, dir string) (*training, error) {
	state, ok := s.warehouse.State(goal)
	if !ok {
		return nil, fmt.Errorf("unknown goal location %q", goal)
	}

	env, _, err := warehouse.NewEnv(s.warehouse, state,
		rand.NewSource(s.seed))
	if err != nil {
		return nil, err
	}

	a, err := s.agent.CreateAgent(env, s.seed)
	if err != nil {
		return nil, err
	}
	learner, ok := a.(*qlearning.QLearning)
	if !ok {
		return nil, fmt.Errorf("cannot train agent of type %T", a)
	}

	returns := trackers.NewReturn(returnsFile)
	tdErrors := trackers.NewTDError(learner, tdErrorsFile)

	var checkpointers []checkpointer.Checkpointer
	if checkpointEvery > 0 {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("could not create checkpoint "+
				"directory: %v", err)
		}
		filename := checkpointer.FilenameEnumerator(0, dir, "values-"+goal,
			".bin")
		checkpointers = append(checkpointers,
			checkpointer.NewNStep(checkpointEvery, learner, filename))
	}

	exp := experiment.NewOnline(env, learner, s.agent.Episodes,
		[]trackers.Tracker{returns, tdErrors}, checkpointers)

	return &training{
		learner:  learner,
		exp:      exp,
		episodes: s.agent.Episodes,
		returns:  returns,
		tdErrors: tdErrors,
	}, nil
}

// run runs all episodes, displaying progress on out
func (t *training) run(out io.Writer) error {
	bar := progressbar.NewManualProgressBar(out, progressBarWidth,
		t.episodes)
	every := t.episodes / 100
	if every < 1 {
		every = 1
	}

	for ended := false; !ended; {
		var err error
		if ended, err = t.exp.RunEpisode(); err != nil {
			return err
		}
		bar.Increment()
		if ended || t.exp.Episodes()%every == 0 {
			bar.Display()
		}
	}
	return nil
}

// save saves the tracked data of each tracker given a filename
func (t *training) save(returnsFile, tdErrorsFile string) error {
	if returnsFile != "" {
		if err := t.returns.Save(); err != nil {
			return err
		}
	}
	if tdErrorsFile != "" {
		if err := t.tdErrors.Save(); err != nil {
			return err
		}
	}
	return nil
}

func trainCommand(o *options) *cobra.Command {
	var (
		returnsFile     string
		tdErrorsFile    string
		valuesFile      string
		checkpointEvery int
		checkpointDir   string
		start           string
		raw             bool
	)

	cmd := &cobra.Command{
		Use:   "train GOAL",
		Short: "Train toward a goal location and print the learned Q-table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.load(cmd)
			if err != nil {
				return err
			}

			t, err := newTraining(s, args[0], returnsFile, tdErrorsFile,
				checkpointEvery, checkpointDir)
			if err != nil {
				return err
			}
			if err := t.run(cmd.ErrOrStderr()); err != nil {
				return err
			}
			if err := t.save(returnsFile, tdErrorsFile); err != nil {
				return err
			}

			au := aurora.NewAurora(!o.noColor)
			values := t.learner.Values()
			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), matutils.Format(values))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), au.Bold("Q-table:"))
				printValues(cmd.OutOrStdout(), au, s.warehouse.Locations(),
					values)
			}

			if valuesFile != "" {
				if err := t.learner.Save(valuesFile); err != nil {
					return err
				}
			}

			if start != "" {
				from, ok := s.warehouse.State(start)
				if !ok {
					return fmt.Errorf("unknown start location %q", start)
				}
				goal, _ := s.warehouse.State(args[0])
				states, err := t.learner.Route(from, goal)
				if err != nil {
					return err
				}

				path := make([]string, len(states))
				for i, state := range states {
					path[i], _ = s.warehouse.Location(state)
				}
				printRoute(cmd.OutOrStdout(), au, path)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&returnsFile, "returns", "", "file to save episodic returns")
	f.StringVar(&tdErrorsFile, "tderrors", "",
		"file to save absolute TD errors")
	f.StringVar(&valuesFile, "save", "", "file to save the learned Q-table")
	f.IntVar(&checkpointEvery, "checkpoint-every", 0,
		"save the Q-table every this many episodes (0 disables)")
	f.StringVar(&checkpointDir, "checkpoint-dir", "checkpoints",
		"directory for Q-table checkpoints")
	f.BoolVar(&raw, "raw", false, "print the Q-table without labels")
	f.StringVar(&start, "start", "",
		"print the learned route from this location")
	return cmd
}

// printValues prints a Q-table, highlighting the greedy action of each
// state
func printValues(out io.Writer, au aurora.Aurora, locations []string,
	values *mat.Dense) {
	rows, cols := values.Dims()

	fmt.Fprintf(out, "%4s", "")
	for _, loc := range locations {
		fmt.Fprintf(out, "%9s", loc)
	}
	fmt.Fprintln(out)

	for i := 0; i < rows; i++ {
		fmt.Fprintf(out, "%4s", locations[i])
		greedy := matutils.MaxVec(values.RowView(i))
		for j := 0; j < cols; j++ {
			cell := fmt.Sprintf("%9.2f", values.At(i, j))
			if j == greedy && values.At(i, j) > 0 {
				fmt.Fprint(out, au.Green(cell))
			} else {
				fmt.Fprint(out, cell)
			}
		}
		fmt.Fprintln(out)
	}
}
