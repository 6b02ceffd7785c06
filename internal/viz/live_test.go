package viz

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/sim"
)

func deckModel(t *testing.T) (Model, *sim.Bench) {
	t.Helper()
	b, err := sim.NewBench(sim.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(b), b
}

func TestTickAdvancesAtTimeScale(t *testing.T) {
	m, b := deckModel(t)

	// One host frame at scale 1 is exactly two sim ticks.
	next, _ := m.Update(TickMsg(time.Now()))
	if got := b.Tick(); got != 2 {
		t.Fatalf("one frame at scale 1 should run 2 ticks, got %d", got)
	}

	next, _ = next.(Model).Update(TickMsg(time.Now()))
	if got := b.Tick(); got != 4 {
		t.Errorf("second frame should add 2 more ticks, got %d", got)
	}

	if err := b.SetTimeScale(2); err != nil {
		t.Fatal(err)
	}
	next, _ = next.(Model).Update(TickMsg(time.Now()))
	if got := b.Tick(); got != 8 {
		t.Errorf("doubled scale should add 4 ticks per frame, got %d", got)
	}

	b.TogglePause()
	next.(Model).Update(TickMsg(time.Now()))
	if got := b.Tick(); got != 8 {
		t.Errorf("paused frame should not advance, got %d", got)
	}
}

func TestGIFRecording(t *testing.T) {
	m, _ := deckModel(t)
	m.gifPath = filepath.Join(t.TempDir(), "flight.gif")

	m.handleKey("g")
	if !m.recording {
		t.Fatal("g should start recording")
	}
	m.captureFrame()
	m.handleKey("g")

	if m.recording {
		t.Error("second g should stop recording")
	}
	if m.notice != "" {
		t.Errorf("clean save should not raise a notice, got %q", m.notice)
	}
	if _, err := os.Stat(m.gifPath); err != nil {
		t.Errorf("expected the animation on disk: %v", err)
	}
}

func TestGIFWriteFailure(t *testing.T) {
	m, _ := deckModel(t)
	m.gifPath = filepath.Join(t.TempDir(), "missing", "flight.gif")

	m.handleKey("g")
	m.captureFrame()
	m.handleKey("g")

	if m.notice == "" {
		t.Error("failed save should surface in the notice line")
	}
	if m.recording {
		t.Error("failed save should still stop recording")
	}
}
