// Package store persists descent runs as a metadata.json plus a
// trace.csv per run directory.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/dualgrad/internal/descent"
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
	ID           string             `json:"id"`
	Function     string             `json:"function"`
	Timestamp    time.Time          `json:"timestamp"`
	LearningRate float64            `json:"learning_rate"`
	Steps        int                `json:"steps"`
	Init         float64            `json:"init"`
	Seed         int64              `json:"seed"`
	Converged    bool               `json:"converged"`
	FinalWeight  float64            `json:"final_weight"`
	Metrics      map[string]float64 `json:"metrics"`
}

func (s *Store) Save(function string, cfg descent.Config, w0 float64, result *descent.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", function, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Function:     function,
		Timestamp:    time.Now(),
		LearningRate: cfg.LearningRate,
		Steps:        result.Steps,
		Init:         w0,
		Seed:         cfg.Seed,
		Converged:    result.Converged,
		FinalWeight:  result.FinalWeight,
		Metrics:      result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "trace.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"step", "weight", "loss", "grad"}); err != nil {
		return "", err
	}

	for i := range result.Weights {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(result.Weights[i], 'f', 9, 64),
			strconv.FormatFloat(result.Losses[i], 'f', 9, 64),
			strconv.FormatFloat(result.Grads[i], 'f', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrace reads the per-step weight, loss and gradient columns of a run.
func (s *Store) LoadTrace(runID string) (weights, losses, grads []float64, err error) {
	csvPath := filepath.Join(s.baseDir, runID, "trace.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []float64{}, []float64{}, nil
	}

	weights = make([]float64, 0, len(records)-1)
	losses = make([]float64, 0, len(records)-1)
	grads = make([]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 4 {
			continue
		}

		w, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		loss, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		grad, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			continue
		}

		weights = append(weights, w)
		losses = append(losses, loss)
		grads = append(grads, grad)
	}

	return weights, losses, grads, nil
}
