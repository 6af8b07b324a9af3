// Package storage persists completed runs: one directory per run holding
// metadata.json and a positions.csv trajectory table.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kav-sh/orbitals/internal/sim"
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

type BodyInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Sun  bool   `json:"sun"`
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Ticks     int                `json:"ticks"`
	TickMs    float64            `json:"tick_ms"`
	Bodies    []BodyInfo         `json:"bodies"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run directory. The csv column set is fixed by the first
// snapshot; bodies added later are not recorded and bodies removed mid-run
// show NaN cells from their removal on.
func (s *Store) Save(scenario string, seed int64, cfg sim.RunConfig, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		Seed:      seed,
		Ticks:     result.TicksRun,
		TickMs:    cfg.TickMs,
		Metrics:   result.Metrics,
	}
	if len(result.Snapshots) > 0 {
		for _, b := range result.Snapshots[0].Bodies {
			meta.Bodies = append(meta.Bodies, BodyInfo{ID: b.ID, Name: b.Name, Sun: b.Sun})
		}
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

	csvFile, err := os.Create(filepath.Join(runDir, "positions.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Snapshots) == 0 {
		return runID, nil
	}

	header := []string{"tick", "time_ms"}
	for _, b := range meta.Bodies {
		col := fmt.Sprintf("b%d", b.ID)
		header = append(header, col+"_x", col+"_y", col+"_z")
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, snap := range result.Snapshots {
		byID := make(map[int64]sim.BodySample, len(snap.Bodies))
		for _, b := range snap.Bodies {
			byID[b.ID] = b
		}

		row := []string{
			strconv.Itoa(snap.Tick),
			strconv.FormatFloat(snap.TimeMs, 'f', 3, 64),
		}
		for _, info := range meta.Bodies {
			b, ok := byID[info.ID]
			if !ok {
				b.Position.X = math.NaN()
				b.Position.Y = math.NaN()
				b.Position.Z = math.NaN()
			}
			row = append(row,
				strconv.FormatFloat(b.Position.X, 'f', 6, 64),
				strconv.FormatFloat(b.Position.Y, 'f', 6, 64),
				strconv.FormatFloat(b.Position.Z, 'f', 6, 64),
			)
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

// LoadSeries reads back positions.csv: column names (without the leading
// tick/time columns), one row of values per sampled tick, and the sample
// times in milliseconds.
func (s *Store) LoadSeries(runID string) (cols []string, rows [][]float64, times []float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "positions.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, nil, nil
	}

	cols = records[0][2:]
	for _, record := range records[1:] {
		if len(record) != len(cols)+2 {
			continue
		}
		t, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		row := make([]float64, len(cols))
		for j, field := range record[2:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				v = math.NaN()
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	return cols, rows, times, nil
}
