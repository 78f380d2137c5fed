// Package export writes analysis results to CSV files for runs without a
// database. Files are append-per-save and safe for a single process only.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"goperiod/domain/period"
	"goperiod/ports"
)

// CSVStore implements ResultStore on top of two CSV files in a directory:
// decisions.csv and counts.csv.
type CSVStore struct {
	dir string
	mu  sync.Mutex

	decisionsHeader bool
	countsHeader    bool
}

var _ ports.ResultStore = (*CSVStore)(nil)

// NewCSVStore creates a store writing under dir, creating it if needed.
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &CSVStore{dir: dir}, nil
}

// SaveRecord appends one decision row
func (s *CSVStore) SaveRecord(_ context.Context, rec period.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	periodStr := ""
	if rec.Result.HasPeriod() {
		periodStr = strconv.FormatFloat(rec.Result.Period, 'f', 2, 64)
	}
	row := []string{
		string(rec.ID),
		string(rec.Event),
		strconv.Itoa(int(rec.ReferenceTime)),
		strconv.FormatBool(rec.Detrended),
		string(rec.Result.Outcome),
		strconv.FormatFloat(rec.Result.RSquared, 'g', -1, 64),
		periodStr,
		strconv.Itoa(rec.Result.Fundamental),
	}

	header := []string{"id", "event", "reference_time", "detrended", "outcome", "r_squared", "period", "fundamental"}
	writeHeader := !s.decisionsHeader
	if err := s.appendRows("decisions.csv", header, writeHeader, [][]string{row}); err != nil {
		return err
	}
	s.decisionsHeader = true
	return nil
}

// SaveCounts appends window count rows
func (s *CSVStore) SaveCounts(_ context.Context, counts []ports.CountRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{
			string(c.Event),
			strconv.Itoa(int(c.ReferenceTime)),
			strconv.Itoa(c.Count),
			strconv.Itoa(c.WindowLen),
			strconv.FormatFloat(c.Probability, 'g', -1, 64),
		})
	}

	header := []string{"event", "reference_time", "event_count", "window_len", "probability"}
	writeHeader := !s.countsHeader
	if err := s.appendRows("counts.csv", header, writeHeader, rows); err != nil {
		return err
	}
	s.countsHeader = true
	return nil
}

func (s *CSVStore) appendRows(name string, header []string, writeHeader bool, rows [][]string) error {
	path := filepath.Join(s.dir, name)
	if writeHeader {
		if _, err := os.Stat(path); err == nil {
			// File survives from a previous run; do not repeat the header.
			writeHeader = false
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
