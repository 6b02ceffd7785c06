package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/sim"
)

type ExportData struct {
	Algorithm string             `json:"algorithm"`
	Pattern   string             `json:"pattern"`
	Wind      float64            `json:"wind"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Times     []float64          `json:"times"`
	States    [][]float64        `json:"states"`
	Refs      [][]float64        `json:"refs"`
	Inputs    [][]float64        `json:"inputs"`
	Metrics   map[string]float64 `json:"metrics"`
}

// WriteJSON serializes a run for offline tooling. States keep the
// full 12-value layout; refs are position triples and inputs are
// thrust plus the three torques.
func WriteJSON(out io.Writer, res *sim.Result) error {
	data := ExportData{
		Algorithm: res.Algorithm.String(),
		Pattern:   res.Pattern.String(),
		Wind:      res.Wind,
		Dt:        sim.Dt,
		Steps:     res.Steps,
		Times:     res.Times,
		States:    make([][]float64, len(res.States)),
		Refs:      make([][]float64, len(res.Setpoints)),
		Inputs:    make([][]float64, len(res.Inputs)),
		Metrics:   res.Metrics,
	}

	for i, s := range res.States {
		data.States[i] = s
	}
	for i, sp := range res.Setpoints {
		data.Refs[i] = []float64{sp.Pos.X, sp.Pos.Y, sp.Pos.Z}
	}
	for i, u := range res.Inputs {
		data.Inputs[i] = []float64{u.Thrust, u.TauPhi, u.TauTheta, u.TauPsi}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSON(path string, res *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, res)
}

// ExportRunJSON re-emits a stored run in the layout WriteJSON uses for
// a live result, reading everything back from the flight log.
func (s *Store) ExportRunJSON(runID string, out io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	var refSeries [3][]float64
	for i, name := range [3]string{"x_ref", "y_ref", "z_ref"} {
		if refSeries[i], err = s.LoadColumn(runID, name); err != nil {
			return err
		}
	}
	var inSeries [4][]float64
	for i, name := range [4]string{"T", "tau_phi", "tau_theta", "tau_psi"} {
		if inSeries[i], err = s.LoadColumn(runID, name); err != nil {
			return err
		}
	}

	n := len(times)
	for _, series := range refSeries {
		if len(series) < n {
			n = len(series)
		}
	}
	for _, series := range inSeries {
		if len(series) < n {
			n = len(series)
		}
	}

	data := ExportData{
		Algorithm: meta.Algorithm,
		Pattern:   meta.Pattern,
		Wind:      meta.Wind,
		Dt:        meta.Dt,
		Steps:     meta.Steps,
		Times:     times[:n],
		States:    states[:n],
		Refs:      make([][]float64, n),
		Inputs:    make([][]float64, n),
		Metrics:   meta.Metrics,
	}
	for i := 0; i < n; i++ {
		data.Refs[i] = []float64{refSeries[0][i], refSeries[1][i], refSeries[2][i]}
		data.Inputs[i] = []float64{inSeries[0][i], inSeries[1][i], inSeries[2][i], inSeries[3][i]}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
