// Package occupation loads the static pipe-delimited occupational
// outcomes dataset (degree, occupation, description, wages) that the
// dashboard pairs with tuition data. The file is reference data only,
// nothing here writes it.
package occupation

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"collegecost-backend/lib/table"
)

// DegreeColumn is the one column the dataset must carry.
const DegreeColumn = "College Degree"

// Load parses the dataset at path and returns it sorted by degree
// name. A missing file surfaces as a wrapped fs error so callers can
// fall back to an empty view.
func Load(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open occupation data: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '|'
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse occupation data: %w", err)
	}
	if len(rows) == 0 {
		return table.New(), nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	tbl := table.New(header...)
	for _, row := range rows[1:] {
		cells := make(map[string]any, len(header))
		for i, col := range header {
			if i >= len(row) {
				continue
			}
			cells[col] = parseCell(row[i])
		}
		tbl.AppendRow(cells)
	}

	sorted, err := tbl.SortBy(DegreeColumn)
	if err != nil {
		return nil, fmt.Errorf("occupation data: %w", err)
	}
	return sorted, nil
}

// Degrees returns the distinct degree names in the (already sorted)
// dataset.
func Degrees(tbl *table.Table) []string {
	return tbl.DistinctStrings(DegreeColumn)
}

// FindByDegree returns the rows matching one degree name.
func FindByDegree(tbl *table.Table, degree string) (*table.Table, error) {
	return tbl.Filter(DegreeColumn, "==", degree)
}

func parseCell(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	return s
}
