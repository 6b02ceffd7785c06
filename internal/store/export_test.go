package store

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/sim"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

func TestWriteJSON(t *testing.T) {
	res := sampleResult(6)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, res); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}

	if data.Algorithm != "smc" {
		t.Errorf("expected smc, got %s", data.Algorithm)
	}
	if data.Steps != 6 {
		t.Errorf("expected 6 steps, got %d", data.Steps)
	}
	if data.Dt != sim.Dt {
		t.Errorf("expected dt %g, got %g", sim.Dt, data.Dt)
	}
	if len(data.Times) != 6 || len(data.States) != 6 || len(data.Refs) != 6 || len(data.Inputs) != 6 {
		t.Fatalf("row counts mangled: %d %d %d %d",
			len(data.Times), len(data.States), len(data.Refs), len(data.Inputs))
	}
	if len(data.States[0]) != vehicle.StateDim {
		t.Errorf("expected %d state values, got %d", vehicle.StateDim, len(data.States[0]))
	}
	if len(data.Refs[0]) != 3 || data.Refs[2][0] != 2 {
		t.Errorf("refs mangled: %v", data.Refs[2])
	}
	if len(data.Inputs[0]) != 4 || data.Inputs[0][0] != 4.905 {
		t.Errorf("inputs mangled: %v", data.Inputs[0])
	}
	if data.Metrics["tracking_error"] != 0.25 {
		t.Errorf("metrics mangled: %v", data.Metrics)
	}
}

func TestExportJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, sampleResult(3)); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("file is not valid json: %v", err)
	}
	if data.Steps != 3 {
		t.Errorf("expected 3 steps, got %d", data.Steps)
	}
}

func TestExportRunJSON(t *testing.T) {
	s := tempStore(t)
	res := sampleResult(8)
	if _, err := s.SaveAs("trial", res); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := s.ExportRunJSON("trial", &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}

	if data.Algorithm != "smc" || data.Pattern != "circle" {
		t.Errorf("ids mangled: %s %s", data.Algorithm, data.Pattern)
	}
	if data.Steps != 8 {
		t.Errorf("expected 8 steps, got %d", data.Steps)
	}
	if len(data.Times) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(data.Times))
	}

	// The flight log stores six decimals, so round-tripped values agree
	// to that precision.
	for i := range data.Refs {
		if math.Abs(data.Refs[i][0]-res.Setpoints[i].Pos.X) > 1e-5 {
			t.Fatalf("ref %d drifted: %g vs %g", i, data.Refs[i][0], res.Setpoints[i].Pos.X)
		}
	}
	if math.Abs(data.Inputs[0][0]-4.905) > 1e-5 {
		t.Errorf("thrust drifted: %g", data.Inputs[0][0])
	}

	if err := s.ExportRunJSON("absent", &buf); err == nil {
		t.Error("unknown run should fail")
	}
}
