package policy

import (
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/warehouse/environment/warehouse"
	"github.com/samuelfneumann/warehouse/timestep"
)

func stepAt(state int) timestep.TimeStep {
	obs := mat.NewVecDense(1, []float64{float64(state)})
	return timestep.New(timestep.First, 0, 1, obs, 0)
}

func TestGreedyTieBreak(t *testing.T) {
	values := mat.NewDense(3, 4, []float64{
		0, 0, 0, 0, // all tied: lowest index
		1, 5, 5, 2, // tie between 1 and 2: lowest index
		-1, -2, 3, 3,
	})
	g := NewGreedy(values)

	for state, want := range []int{0, 1, 2} {
		if got := g.Action(state); got != want {
			t.Errorf("action(%v): expected %v, got %v", state, want, got)
		}
		action := g.SelectAction(stepAt(state))
		if int(action.AtVec(0)) != want {
			t.Errorf("selectAction(%v): expected %v, got %v", state, want,
				action.AtVec(0))
		}
	}
}

func TestGreedyTracksValues(t *testing.T) {
	values := mat.NewDense(2, 2, nil)
	g := NewGreedy(values)

	if g.Action(0) != 0 {
		t.Fatal("action: expected 0 with zero values")
	}
	values.Set(0, 1, 1)
	if g.Action(0) != 1 {
		t.Error("action: greedy policy should see updated values")
	}
}

func TestUniformSelectsPlayable(t *testing.T) {
	w := warehouse.Reference()
	env, _, err := warehouse.NewEnv(w, 6, rand.NewSource(1))
	if err != nil {
		t.Fatalf("newEnv: %v", err)
	}
	u := NewUniform(env, rand.NewSource(2))

	// J (9) connects to F, I, and K
	state, _ := w.State("J")
	counts := make(map[int]int)
	for i := 0; i < 3000; i++ {
		a := int(u.SelectAction(stepAt(state)).AtVec(0))
		if !w.Connected(state, a) {
			t.Fatalf("selectAction: %v is not playable from %v", a, state)
		}
		counts[a]++
	}

	if len(counts) != len(env.Playable(state)) {
		t.Fatalf("selectAction: expected %v distinct actions, got %v",
			len(env.Playable(state)), len(counts))
	}
	for a, c := range counts {
		if c < 800 || c > 1200 {
			t.Errorf("selectAction: action %v selected %v/3000 times", a, c)
		}
	}
}

func TestUniformDeterministic(t *testing.T) {
	w := warehouse.Reference()
	env, _, _ := warehouse.NewEnv(w, 6, rand.NewSource(1))

	a := NewUniform(env, rand.NewSource(9))
	b := NewUniform(env, rand.NewSource(9))
	for i := 0; i < 200; i++ {
		state := i % w.Len()
		x := a.SelectAction(stepAt(state)).AtVec(0)
		y := b.SelectAction(stepAt(state)).AtVec(0)
		if x != y {
			t.Fatalf("selectAction: same seed selected %v and %v", x, y)
		}
	}
}
