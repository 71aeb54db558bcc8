package trackers

import (
	"path/filepath"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"

	ts "github.com/samuelfneumann/warehouse/timestep"
)

func step(t ts.StepType, reward float64, n int) ts.TimeStep {
	return ts.New(t, reward, 1, mat.NewVecDense(1, []float64{0}), n)
}

func TestReturn(t *testing.T) {
	r := NewReturn(filepath.Join(t.TempDir(), "returns.bin"))

	r.Track(step(ts.First, 0, 0))
	r.Track(step(ts.Mid, 1, 1))
	r.Track(step(ts.Last, 2, 2))
	r.Track(step(ts.First, 0, 0))
	r.Track(step(ts.Last, 1000, 1))

	if want := []float64{3, 1000}; !reflect.DeepEqual(r.Data(), want) {
		t.Errorf("track: expected returns %v, got %v", want, r.Data())
	}
}

func TestReturnPanicsOnGap(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("track: expected panic for non-sequential timesteps")
		}
	}()

	r := NewReturn("")
	r.Track(step(ts.First, 0, 0))
	r.Track(step(ts.Last, 0, 2))
}

type fixedTD float64

func (f fixedTD) Step() error { return nil }
func (f fixedTD) Observe(*mat.VecDense, ts.TimeStep) error { return nil }
func (f fixedTD) ObserveFirst(ts.TimeStep) error { return nil }
func (f fixedTD) EndEpisode() {}
func (f fixedTD) TdError() float64 { return float64(f) }

func TestTDErrorSaveLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "td.bin")
	tracker := NewTDError(fixedTD(-2.5), filename)

	tracker.Track(step(ts.First, 0, 0))
	tracker.Track(step(ts.Last, 1, 1))
	tracker.Track(step(ts.Last, 1, 1))

	if want := []float64{2.5, 2.5}; !reflect.DeepEqual(tracker.Data(),
		want) {
		t.Fatalf("track: expected %v, got %v", want, tracker.Data())
	}

	if err := tracker.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := LoadData(filename)
	if err != nil {
		t.Fatalf("loadData: %v", err)
	}
	if !reflect.DeepEqual(data, tracker.Data()) {
		t.Errorf("loadData: expected %v, got %v", tracker.Data(), data)
	}
}
