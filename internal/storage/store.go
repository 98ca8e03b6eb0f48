package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	dynamicsFile = "dynamics.csv"
)

var dynamicsHeader = []string{"tick", "time", "cx", "cy", "vx", "vy", "rotation_freq", "drive"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// FieldInfo is the field configuration a run started with.
type FieldInfo struct {
	Strength  float64 `json:"strength"`
	Direction string  `json:"direction"`
	PulseType string  `json:"pulse_type"`
	PulseFreq float64 `json:"pulse_freq"`
	PulseAmp  float64 `json:"pulse_amp"`
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Label      string             `json:"label"`
	Timestamp  time.Time          `json:"timestamp"`
	GridSize   int                `json:"grid_size"`
	CoreRadius float64            `json:"core_radius"`
	DMI        float64            `json:"dmi"`
	Field      FieldInfo          `json:"field"`
	Ticks      int                `json:"ticks"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and dynamics.csv under a fresh run directory.
// meta.ID, meta.Timestamp, meta.Steps and meta.Metrics are filled in here.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	label := meta.Label
	if label == "" {
		label = "run"
	}
	runID := fmt.Sprintf("%s_%d", label, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Label = label
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	if err := writeRecords(filepath.Join(runDir, dynamicsFile), result.Records); err != nil {
		return "", err
	}

	return runID, nil
}

func writeRecords(path string, records []sim.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteRecordsCSV(f, records)
}

func writeJSON(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// List returns all readable runs, oldest first.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadRecords(runID string) ([]sim.Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, dynamicsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return []sim.Record{}, nil
	}

	records := make([]sim.Record, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		rec, err := parseRecord(rows[i])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", dynamicsFile, i+1, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// WriteRecordsCSV writes records in the dynamics.csv layout.
func WriteRecordsCSV(out io.Writer, records []sim.Record) error {
	w := csv.NewWriter(out)

	if err := w.Write(dynamicsHeader); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Tick),
			formatFloat(r.Time),
			formatFloat(r.Center.X),
			formatFloat(r.Center.Y),
			formatFloat(r.Velocity.X),
			formatFloat(r.Velocity.Y),
			formatFloat(r.RotationFreq),
			formatFloat(r.Drive),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func parseRecord(row []string) (sim.Record, error) {
	if len(row) != len(dynamicsHeader) {
		return sim.Record{}, fmt.Errorf("expected %d columns, got %d", len(dynamicsHeader), len(row))
	}

	tick, err := strconv.Atoi(row[0])
	if err != nil {
		return sim.Record{}, err
	}

	vals := make([]float64, len(row)-1)
	for j := 1; j < len(row); j++ {
		v, err := strconv.ParseFloat(row[j], 64)
		if err != nil {
			return sim.Record{}, err
		}
		vals[j-1] = v
	}

	return sim.Record{
		Tick:         tick,
		Time:         vals[0],
		Center:       dynamo.Vec2{X: vals[1], Y: vals[2]},
		Velocity:     dynamo.Vec2{X: vals[3], Y: vals[4]},
		RotationFreq: vals[5],
		Drive:        vals[6],
	}, nil
}
