package table

import (
	"fmt"
	"math"
	"sort"
)

// Stats holds the aggregate statistics of one numeric column. Count is
// the number of cells that actually contributed.
type Stats struct {
	Mean   float64
	Median float64
	Min    float64
	Max    float64
	Std    float64
	Count  int
}

// Stats aggregates a numeric column. Missing cells and the -1 sentinel
// are excluded: the sentinel denotes "unknown", and letting it into a
// tuition mean would drag every average toward nonsense. A column with
// no contributing cells yields the zero Stats.
func (t *Table) Stats(column string) (Stats, error) {
	if !t.HasColumn(column) {
		return Stats{}, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}
	if t.kindOf(column) != kindNumeric {
		return Stats{}, fmt.Errorf("%w: %q", ErrNotNumeric, column)
	}

	var values []float64
	for _, v := range t.cells[column] {
		n, ok := v.(float64)
		if !ok || n == NumericSentinel {
			continue
		}
		values = append(values, n)
	}
	if len(values) == 0 {
		return Stats{}, nil
	}

	sort.Float64s(values)

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	mid := len(values) / 2
	median := values[mid]
	if len(values)%2 == 0 {
		median = (values[mid-1] + values[mid]) / 2
	}

	// sample standard deviation, matching pandas' default
	std := 0.0
	if len(values) > 1 {
		var sq float64
		for _, v := range values {
			sq += (v - mean) * (v - mean)
		}
		std = math.Sqrt(sq / float64(len(values)-1))
	}

	return Stats{
		Mean:   mean,
		Median: median,
		Min:    values[0],
		Max:    values[len(values)-1],
		Std:    std,
		Count:  len(values),
	}, nil
}
