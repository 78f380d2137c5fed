package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"goperiod/domain/grid"
)

// WriteGridResults writes a cell-per-row CSV of grid outcomes.
func WriteGridResults(path string, results grid.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"row", "col", "outcome", "r_squared", "period"}); err != nil {
		return err
	}
	for i, row := range results {
		for j, res := range row {
			periodStr := ""
			if res.HasPeriod() {
				periodStr = strconv.FormatFloat(res.Period, 'f', 2, 64)
			}
			rec := []string{
				strconv.Itoa(i),
				strconv.Itoa(j),
				string(res.Outcome),
				strconv.FormatFloat(res.RSquared, 'g', -1, 64),
				periodStr,
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}
