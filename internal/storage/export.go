package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/shearsim/internal/dynamo"
)

type ExportData struct {
	Run      RunMetadata  `json:"run"`
	Times    []float64    `json:"times"`
	States   [][4]float64 `json:"states"`
	Energies []float64    `json:"energies"`
}

// SampleLine is one sample of a JSON-lines stream.
type SampleLine struct {
	Step   int          `json:"step"`
	Time   float64      `json:"t"`
	State  dynamo.State `json:"state"`
	Energy float64      `json:"energy"`
}

// WriteSampleLine writes s as a single JSON line.
func WriteSampleLine(enc *json.Encoder, s dynamo.Sample) error {
	return enc.Encode(SampleLine{Step: s.Step, Time: s.Time, State: s.State, Energy: s.Energy})
}

// ExportJSON writes a run and its samples as one indented JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, samples []dynamo.Sample) error {
	data := ExportData{
		Run:      *meta,
		Times:    make([]float64, len(samples)),
		States:   make([][4]float64, len(samples)),
		Energies: make([]float64, len(samples)),
	}

	for i, s := range samples {
		data.Times[i] = s.Time
		data.States[i] = s.State
		data.Energies[i] = s.Energy
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
