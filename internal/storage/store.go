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
)

const (
	metadataFile = "metadata.json"
	stepsFile    = "steps.csv"
)

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
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Start       int                `json:"start"`
	Word        string             `json:"word"`
	TapeSize    int                `json:"tape_size"`
	MaxSteps    int                `json:"max_steps"`
	Transitions int                `json:"transitions"`
	Verdict     string             `json:"verdict"`
	Steps       int                `json:"steps"`
	Error       string             `json:"error,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// StepRecord is one recorded configuration of a run.
type StepRecord struct {
	Step       int    `json:"step"`
	State      int    `json:"state"`
	Head       int    `json:"head"`
	Tape       string `json:"tape"`
	Transition string `json:"transition,omitempty"`
}

var stepsHeader = []string{"step", "state", "head", "tape", "transition"}

// Save writes a new run directory and returns its id. ID and Timestamp of
// meta are filled in.
func (s *Store) Save(meta RunMetadata, steps []StepRecord) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", safeName(meta.Name), now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	if meta.Metrics == nil {
		meta.Metrics = map[string]float64{}
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, stepsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := ExportCSV(csvFile, steps); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns saved runs, oldest first. Unreadable run directories are skipped.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
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

func (s *Store) LoadSteps(runID string) ([]StepRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, stepsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(stepsHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []StepRecord{}, nil
	}

	steps := make([]StepRecord, 0, len(records)-1)
	for i, record := range records[1:] {
		var st StepRecord
		if st.Step, err = strconv.Atoi(record[0]); err != nil {
			return nil, fmt.Errorf("%s row %d: step: %w", stepsFile, i+1, err)
		}
		if st.State, err = strconv.Atoi(record[1]); err != nil {
			return nil, fmt.Errorf("%s row %d: state: %w", stepsFile, i+1, err)
		}
		if st.Head, err = strconv.Atoi(record[2]); err != nil {
			return nil, fmt.Errorf("%s row %d: head: %w", stepsFile, i+1, err)
		}
		st.Tape = record[3]
		st.Transition = record[4]
		steps = append(steps, st)
	}

	return steps, nil
}

func safeName(name string) string {
	if name == "" {
		return "run"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '-'
		}
	}, name)
}
