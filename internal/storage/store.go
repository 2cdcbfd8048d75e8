package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/shearsim/internal/dynamo"
	"github.com/san-kum/shearsim/internal/physics"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

var statesHeader = []string{"time", "x1", "x2", "v1", "v2", "energy"}

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
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	Params      physics.Params     `json:"params"`
	InitState   dynamo.State       `json:"init_state"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Decimation  int                `json:"decimation"`
	Steps       int                `json:"steps"`
	Final       dynamo.State       `json:"final"`
	FinalTime   float64            `json:"final_time"`
	FinalEnergy float64            `json:"final_energy"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save archives a finished run under a new run directory and returns its id.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", scenarioSlug(meta.Scenario), now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.Final = result.Final
	meta.FinalTime = result.FinalTime
	meta.FinalEnergy = result.FinalEnergy
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), result.Samples); err != nil {
		return "", err
	}

	return runID, nil
}

// scenarioSlug keeps a scenario name usable as a single path element:
// anything outside [A-Za-z0-9_-] becomes '_'.
func scenarioSlug(name string) string {
	slug := []byte(name)
	for i, c := range slug {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
		default:
			slug[i] = '_'
		}
	}
	if len(slug) == 0 {
		return "run"
	}
	return string(slug)
}

func checkRunID(runID string) error {
	if runID == "" || runID == "." || runID == ".." || strings.ContainsAny(runID, `/\`) {
		return fmt.Errorf("invalid run id %q", runID)
	}
	return nil
}

// writeFile creates path, lets fill write to it, and reports the first of
// the write and close errors.
func writeFile(path string, fill func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	return writeFile(path, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

func writeStates(path string, samples []dynamo.Sample) error {
	return writeFile(path, func(f *os.File) error {
		return encodeStates(f, samples)
	})
}

func encodeStates(f *os.File, samples []dynamo.Sample) error {
	w := csv.NewWriter(f)
	if err := w.Write(statesHeader); err != nil {
		return err
	}

	row := make([]string, len(statesHeader))
	for _, smp := range samples {
		row[0] = strconv.FormatFloat(smp.Time, 'g', -1, 64)
		for i, v := range smp.State {
			row[i+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		row[5] = strconv.FormatFloat(smp.Energy, 'g', -1, 64)
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns archived runs, oldest first.
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
	if err := checkRunID(runID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads the recorded samples of a run. Step indices are not
// stored and are left at zero.
func (s *Store) LoadSamples(runID string) ([]dynamo.Sample, error) {
	if err := checkRunID(runID); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(statesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []dynamo.Sample{}, nil
	}

	samples := make([]dynamo.Sample, 0, len(records)-1)
	for line, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s line %d: %w", runID, line+2, err)
			}
			vals[j] = v
		}
		samples = append(samples, dynamo.Sample{
			Time:   vals[0],
			State:  dynamo.State{vals[1], vals[2], vals[3], vals[4]},
			Energy: vals[5],
		})
	}

	return samples, nil
}
