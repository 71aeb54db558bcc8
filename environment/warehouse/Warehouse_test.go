package warehouse

import (
	"errors"
	"testing"
)

func TestReferenceMapping(t *testing.T) {
	w := Reference()

	if w.Len() != 12 {
		t.Fatalf("len: expected 12 locations, got %v", w.Len())
	}

	rows, cols := w.Rewards().Dims()
	if rows != w.Len() || cols != w.Len() {
		t.Errorf("rewards: expected %vx%v, got %vx%v", w.Len(), w.Len(),
			rows, cols)
	}

	for i, loc := range w.Locations() {
		state, ok := w.State(loc)
		if !ok || state != i {
			t.Errorf("state: %v should map to %v, got %v (%v)", loc, i,
				state, ok)
		}

		back, err := w.Location(state)
		if err != nil || back != loc {
			t.Errorf("location: state %v should map to %v, got %v (%v)",
				state, loc, back, err)
		}
	}

	if _, ok := w.State("Z"); ok {
		t.Error("state: unknown location Z should not be found")
	}
	if _, err := w.Location(12); !errors.Is(err, ErrInvalidState) {
		t.Errorf("location: expected ErrInvalidState, got %v", err)
	}
}

func TestRewardsForGoalAltersOnlyGoal(t *testing.T) {
	w := Reference()
	base := w.Rewards()

	for goal := 0; goal < w.Len(); goal++ {
		rewards, err := w.RewardsForGoal(goal)
		if err != nil {
			t.Fatalf("rewardsForGoal: %v", err)
		}

		altered := 0
		for i := 0; i < w.Len(); i++ {
			for j := 0; j < w.Len(); j++ {
				if rewards.At(i, j) == base.At(i, j) {
					continue
				}
				altered++
				if i != goal || j != goal {
					t.Errorf("goal %v: unexpected change at (%v, %v)", goal,
						i, j)
				}
			}
		}

		if altered != 1 {
			t.Errorf("goal %v: expected exactly 1 altered entry, got %v",
				goal, altered)
		}
		if rewards.At(goal, goal) != DefaultGoalReward {
			t.Errorf("goal %v: expected bonus %v, got %v", goal,
				DefaultGoalReward, rewards.At(goal, goal))
		}
	}
}

func TestRewardsForGoalDoesNotMutateBase(t *testing.T) {
	w := Reference()

	rewards, err := w.RewardsForGoal(6)
	if err != nil {
		t.Fatalf("rewardsForGoal: %v", err)
	}
	rewards.Set(0, 0, 42)

	if got := w.Rewards().At(6, 6); got != 0 {
		t.Errorf("base: expected (6, 6) = 0, got %v", got)
	}
	if got := w.Rewards().At(0, 0); got != 0 {
		t.Errorf("base: expected (0, 0) = 0, got %v", got)
	}

	// Copies returned by Rewards are also independent of the base
	copied := w.Rewards()
	copied.Set(1, 1, 7)
	if got := w.Rewards().At(1, 1); got != 0 {
		t.Errorf("base: expected (1, 1) = 0, got %v", got)
	}
}

func TestRewardsForGoalInvalidState(t *testing.T) {
	w := Reference()

	for _, goal := range []int{-1, w.Len(), 100} {
		if _, err := w.RewardsForGoal(goal); !errors.Is(err,
			ErrInvalidState) {
			t.Errorf("goal %v: expected ErrInvalidState, got %v", goal, err)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Locations:  []string{"X", "Y"},
			Rewards:    [][]float64{{0, 1}, {1, 0}},
			GoalReward: 10,
		}
	}

	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"Valid", func(c *Config) {}, true},
		{"NoLocations", func(c *Config) { c.Locations = nil }, false},
		{"EmptyName", func(c *Config) { c.Locations[0] = "" }, false},
		{"Duplicate", func(c *Config) { c.Locations[1] = "X" }, false},
		{"ShortRows", func(c *Config) {
			c.Rewards = c.Rewards[:1]
		}, false},
		{"ShortCols", func(c *Config) { c.Rewards[1] = []float64{1} }, false},
		{"Negative", func(c *Config) { c.Rewards[0][1] = -1 }, false},
		{"WeakBonus", func(c *Config) { c.GoalReward = 2 }, false},
	}

	for _, test := range tests {
		c := valid()
		test.modify(&c)

		err := c.Validate()
		if test.valid && err != nil {
			t.Errorf("%v: unexpected error %v", test.name, err)
		} else if !test.valid && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%v: expected ErrInvalidConfig, got %v", test.name, err)
		}
	}

	if err := ReferenceConfig().Validate(); err != nil {
		t.Errorf("reference: unexpected error %v", err)
	}
}

func TestNewCopiesConfig(t *testing.T) {
	c := ReferenceConfig()
	w, err := New(c)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	c.Locations[0] = "Z"
	c.Rewards[0][1] = 0

	if loc, _ := w.Location(0); loc != "A" {
		t.Errorf("location: expected A, got %v", loc)
	}
	if !w.Connected(0, 1) {
		t.Error("connected: A should still connect to B")
	}
}
