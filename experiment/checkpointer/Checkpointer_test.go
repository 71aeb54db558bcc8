package checkpointer

import (
	"fmt"
	"path/filepath"
	"testing"
)

type recorder struct {
	saved []string
	err   error
}

func (r *recorder) Save(filename string) error {
	r.saved = append(r.saved, filename)
	return r.err
}

func TestNStep(t *testing.T) {
	dir := t.TempDir()
	r := &recorder{}
	c := NewNStep(3, r, FilenameEnumerator(0, dir, "q", ".bin"))

	for episode := 1; episode <= 10; episode++ {
		if err := c.Checkpoint(episode); err != nil {
			t.Fatalf("checkpoint: %v", err)
		}
	}

	want := []string{
		filepath.Join(dir, "q-1.bin"),
		filepath.Join(dir, "q-2.bin"),
		filepath.Join(dir, "q-3.bin"),
	}
	if len(r.saved) != len(want) {
		t.Fatalf("checkpoint: expected %v saves, got %v", len(want),
			len(r.saved))
	}
	for i := range want {
		if r.saved[i] != want[i] {
			t.Errorf("checkpoint %v: expected %v, got %v", i, want[i],
				r.saved[i])
		}
	}
}

func TestNStepPropagatesErrors(t *testing.T) {
	r := &recorder{err: fmt.Errorf("disk full")}
	c := NewNStep(1, r, FilenameEnumerator(0, "", "q", ".bin"))

	if err := c.Checkpoint(1); err == nil {
		t.Error("checkpoint: expected save error")
	}
}

func TestNStepDisabled(t *testing.T) {
	r := &recorder{}
	c := NewNStep(0, r, FilenameEnumerator(0, "", "q", ".bin"))

	for episode := 1; episode <= 5; episode++ {
		c.Checkpoint(episode)
	}
	if len(r.saved) != 0 {
		t.Errorf("checkpoint: interval 0 should never save, saved %v",
			r.saved)
	}
}
