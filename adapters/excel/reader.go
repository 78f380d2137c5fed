package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"goperiod/domain/core"
	"goperiod/domain/series"
	"goperiod/ports"

	"github.com/xuri/excelize/v2"
)

// DataReader reads indicator time series from Excel and CSV files. The
// expected layout is one header row naming the event columns, one row per
// year, with an optional leading year/time column. Blank cells become zero,
// which is the "event did not occur" value.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

var _ ports.SeriesSource = (*DataReader)(nil)

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// Indicators reads every event column as a full-length indicator series.
func (r *DataReader) Indicators(_ context.Context) ([]series.Indicator, error) {
	log.Printf("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%s file must have at least a header row and one data row", strings.ToUpper(r.fileType))
	}

	return r.processRows(rows)
}

// readExcelRows reads raw rows from Sheet1
func (r *DataReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// Always use Sheet1
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	log.Printf("[DataReader] Sheet1 read in %.2fms (%d rows)",
		float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// readCSVRows reads raw rows from a CSV file
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	startTime := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)",
		float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// processRows converts raw string rows into indicator series
func (r *DataReader) processRows(rows [][]string) ([]series.Indicator, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	firstCol := 0
	startYear := 0
	if hasYearColumn(headers) {
		firstCol = 1
		year, err := parseYear(rows[1])
		if err != nil {
			return nil, err
		}
		startYear = year
	}

	if len(headers) <= firstCol {
		return nil, fmt.Errorf("no event columns found")
	}

	indicators := make([]series.Indicator, 0, len(headers)-firstCol)
	for col := firstCol; col < len(headers); col++ {
		if headers[col] == "" {
			continue
		}
		values := make([]float64, 0, len(rows)-1)
		for i := 1; i < len(rows); i++ {
			cell := ""
			if col < len(rows[i]) {
				cell = strings.TrimSpace(rows[i][col])
			}
			if cell == "" {
				values = append(values, 0)
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i+1, headers[col], err)
			}
			values = append(values, v)
		}
		indicators = append(indicators, series.Indicator{
			Event:  core.EventKey(headers[col]),
			Start:  startYear,
			Values: values,
		})
	}

	log.Printf("[DataReader] %s file processed (%d indicators, %d samples each)",
		strings.ToUpper(r.fileType), len(indicators), len(rows)-1)
	return indicators, nil
}

// hasYearColumn reports whether the first column is a time axis rather than
// an event series.
func hasYearColumn(headers []string) bool {
	if len(headers) == 0 {
		return false
	}
	switch strings.ToLower(headers[0]) {
	case "year", "time", "t", "date", "":
		return true
	}
	return false
}

func parseYear(row []string) (int, error) {
	if len(row) == 0 {
		return 0, fmt.Errorf("empty first data row")
	}
	year, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return 0, fmt.Errorf("first column is not a year: %w", err)
	}
	return year, nil
}
