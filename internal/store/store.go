package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/sim"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/vehicle"
)

// Columns is the flight log schema, in file order. Every exporter and
// loader in the repo goes through this list; the final column is the
// algorithm id and is the only non-numeric one.
var Columns = []string{
	"time",
	"x", "y", "z",
	"vx", "vy", "vz",
	"phi", "theta", "psi",
	"p", "q", "r",
	"x_ref", "y_ref", "z_ref",
	"T", "tau_phi", "tau_theta", "tau_psi",
	"s_x", "s_y", "s_z",
	"m1", "m2", "m3", "m4",
	"algo",
}

// Store keeps recorded runs under baseDir, one directory per run with
// a metadata.json and a flight.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Algorithm string             `json:"algorithm"`
	Pattern   string             `json:"pattern"`
	Timestamp time.Time          `json:"timestamp"`
	Wind      float64            `json:"wind"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save records one finished run under a generated id.
func (s *Store) Save(res *sim.Result) (string, error) {
	return s.SaveAs(fmt.Sprintf("%s_%s_%d", res.Algorithm, res.Pattern, time.Now().Unix()), res)
}

// SaveAs records a run under a caller-chosen id, as scripted scenarios
// do with their save_as labels.
func (s *Store) SaveAs(runID string, res *sim.Result) (string, error) {
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Algorithm: res.Algorithm.String(),
		Pattern:   res.Pattern.String(),
		Timestamp: time.Now(),
		Wind:      res.Wind,
		Dt:        sim.Dt,
		Duration:  float64(res.Steps) * sim.Dt,
		Steps:     res.Steps,
		Metrics:   res.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "flight.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, res); err != nil {
		return "", err
	}

	return runID, nil
}

// WriteCSV streams a run as a flight log following Columns.
func WriteCSV(out io.Writer, res *sim.Result) error {
	w := csv.NewWriter(out)

	if err := w.Write(Columns); err != nil {
		return err
	}

	algo := res.Algorithm.String()
	row := make([]string, len(Columns))

	for i := range res.Times {
		x := res.States[i]
		sp := res.Setpoints[i]
		u := res.Inputs[i]
		sf := res.Surfaces[i]
		m := res.Motors[i]

		vals := []float64{
			res.Times[i],
			x[vehicle.IX], x[vehicle.IY], x[vehicle.IZ],
			x[vehicle.IVX], x[vehicle.IVY], x[vehicle.IVZ],
			x[vehicle.IPhi], x[vehicle.ITheta], x[vehicle.IPsi],
			x[vehicle.IP], x[vehicle.IQ], x[vehicle.IR],
			sp.Pos.X, sp.Pos.Y, sp.Pos.Z,
			u.Thrust, u.TauPhi, u.TauTheta, u.TauPsi,
			sf.X, sf.Y, sf.Z,
			m[0], m[1], m[2], m[3],
		}
		for j, v := range vals {
			row[j] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		row[len(row)-1] = algo

		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadColumn reads one numeric channel of a stored flight log.
func (s *Store) LoadColumn(runID, column string) ([]float64, error) {
	records, err := s.readFlight(runID)
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("run %s: empty flight log", runID)
	}

	col := -1
	for i, name := range records[0] {
		if name == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("unknown column: %s", column)
	}

	vals := make([]float64, 0, len(records)-1)
	for _, rec := range records[1:] {
		if col >= len(rec) {
			continue
		}
		v, err := strconv.ParseFloat(rec[col], 64)
		if err != nil {
			return nil, fmt.Errorf("column %s is not numeric", column)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// LoadStates reads the 12 state channels and the time axis of a run.
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	records, err := s.readFlight(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)

	for _, rec := range records[1:] {
		if len(rec) < 1+vehicle.StateDim {
			continue
		}

		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			continue
		}

		state := make([]float64, vehicle.StateDim)
		ok := true
		for j := 0; j < vehicle.StateDim; j++ {
			v, err := strconv.ParseFloat(rec[1+j], 64)
			if err != nil {
				ok = false
				break
			}
			state[j] = v
		}
		if !ok {
			continue
		}

		times = append(times, t)
		states = append(states, state)
	}

	return states, times, nil
}

// CopyCSV streams a stored flight log to out unchanged.
func (s *Store) CopyCSV(runID string, out io.Writer) error {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "flight.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(out, file)
	return err
}

func (s *Store) readFlight(runID string) ([][]string, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "flight.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
