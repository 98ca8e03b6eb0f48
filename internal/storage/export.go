package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/skyrmsim/internal/dynamo"
	"github.com/san-kum/skyrmsim/internal/sim"
)

type ExportRecord struct {
	Tick         int         `json:"tick"`
	Time         float64     `json:"time"`
	Center       dynamo.Vec2 `json:"center"`
	Velocity     dynamo.Vec2 `json:"velocity"`
	RotationFreq float64     `json:"rotation_freq"`
	Drive        float64     `json:"drive"`
}

type ExportData struct {
	Run     RunMetadata    `json:"run"`
	Steps   int            `json:"steps"`
	Records []ExportRecord `json:"records"`
}

// ExportJSON writes a run's metadata and records as one indented document.
func ExportJSON(w io.Writer, meta RunMetadata, records []sim.Record) error {
	data := ExportData{
		Run:     meta,
		Steps:   len(records),
		Records: make([]ExportRecord, len(records)),
	}

	for i, r := range records {
		data.Records[i] = ExportRecord{
			Tick:         r.Tick,
			Time:         r.Time,
			Center:       r.Center,
			Velocity:     r.Velocity,
			RotationFreq: r.RotationFreq,
			Drive:        r.Drive,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportRun loads a stored run and exports it.
func (s *Store) ExportRun(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	records, err := s.LoadRecords(runID)
	if err != nil {
		return err
	}
	return ExportJSON(w, *meta, records)
}
