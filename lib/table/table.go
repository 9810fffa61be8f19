// Package table implements the in-memory tabular layer between raw
// API records and anything user-facing: field renaming, null
// substitution, filtering, lookups and column statistics.
//
// Cells are dynamically typed the way JSON decodes them: float64 for
// numbers, string for text, nil for missing. Anything else passes
// through untouched.
package table

import (
	"fmt"
	"sort"
)

// Sentinels standing in for missing cells after Clean. -1 means
// "missing, not zero"; consumers must treat it as unknown, never as a
// valid amount.
const (
	NumericSentinel = float64(-1)
	TextSentinel    = "Unavailable"
)

var (
	ErrColumnNotFound      = fmt.Errorf("column not found")
	ErrNotNumeric          = fmt.Errorf("column is not numeric")
	ErrUnsupportedOperator = fmt.Errorf("unsupported comparison operator")
)

// renames maps the dotted field paths the API serves to flat column
// identifiers. Only keys actually present in the data get renamed.
var renames = map[string]string{
	"school.name":                               "school_name",
	"latest.cost.tuition.in_state":              "tuition_in_state",
	"latest.cost.tuition.out_of_state":          "tuition_out_of_state",
	"latest.completion.rate":                    "completion_rate",
	"latest.completion.rate_suppressed.overall": "completion_rate",
}

// canonicalOrder fixes the position of the documented columns; any
// extra columns follow alphabetically.
var canonicalOrder = []string{
	"id",
	"school_name",
	"school.state",
	"tuition_in_state",
	"tuition_out_of_state",
	"completion_rate",
}

// numericByDefault decides the type of a column whose every cell is
// missing. These are the fields the API documents as numeric.
var numericByDefault = map[string]bool{
	"id":                   true,
	"tuition_in_state":     true,
	"tuition_out_of_state": true,
	"completion_rate":      true,
}

// Rename returns the flat identifier for a dotted field path, or the
// path itself when no rename is defined.
func Rename(field string) string {
	if flat, ok := renames[field]; ok {
		return flat
	}
	return field
}

type Table struct {
	columns []string
	cells   map[string][]any
	rows    int
}

func New(columns ...string) *Table {
	t := &Table{
		columns: append([]string{}, columns...),
		cells:   map[string][]any{},
	}
	for _, c := range t.columns {
		t.cells[c] = nil
	}
	return t
}

// FromRecords builds a table from raw record maps, applying the field
// renames. An empty record list yields an empty table, not an error.
// When selected is non-empty the table is projected down to the
// intersection of the requested fields (pre- or post-rename) and the
// available columns.
func FromRecords[M ~map[string]any](records []M, selected []string) *Table {
	if len(records) == 0 {
		return New()
	}

	present := map[string]bool{}
	for _, r := range records {
		for k := range r {
			present[Rename(k)] = true
		}
	}

	var columns []string
	for _, c := range canonicalOrder {
		if present[c] {
			columns = append(columns, c)
			delete(present, c)
		}
	}
	var rest []string
	for c := range present {
		rest = append(rest, c)
	}
	sort.Strings(rest)
	columns = append(columns, rest...)

	if len(selected) > 0 {
		want := map[string]bool{}
		for _, f := range selected {
			want[Rename(f)] = true
		}
		var kept []string
		for _, c := range columns {
			if want[c] {
				kept = append(kept, c)
			}
		}
		columns = kept
	}

	t := New(columns...)
	for _, r := range records {
		row := make(map[string]any, len(r))
		for k, v := range r {
			row[Rename(k)] = v
		}
		t.AppendRow(row)
	}
	return t
}

// AppendRow adds one row. Columns absent from the map get a nil cell;
// keys that aren't columns are ignored.
func (t *Table) AppendRow(row map[string]any) {
	for _, c := range t.columns {
		t.cells[c] = append(t.cells[c], row[c])
	}
	t.rows++
}

func (t *Table) Columns() []string {
	return append([]string{}, t.columns...)
}

func (t *Table) NumRows() int {
	return t.rows
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.cells[name]
	return ok
}

// Value returns the cell at (column, row), nil when either is out of
// range.
func (t *Table) Value(column string, row int) any {
	cells, ok := t.cells[column]
	if !ok || row < 0 || row >= len(cells) {
		return nil
	}
	return cells[row]
}

// Row returns one row as a column→cell map.
func (t *Table) Row(i int) map[string]any {
	row := make(map[string]any, len(t.columns))
	for _, c := range t.columns {
		row[c] = t.Value(c, i)
	}
	return row
}

func (t *Table) copyStructure() *Table {
	return New(t.columns...)
}

type columnKind int

const (
	kindNumeric columnKind = iota
	kindText
	kindOther
)

func (t *Table) kindOf(column string) columnKind {
	var hasNum, hasText, hasOther bool
	for _, v := range t.cells[column] {
		switch v.(type) {
		case nil:
		case float64:
			hasNum = true
		case string:
			hasText = true
		default:
			hasOther = true
		}
	}
	switch {
	case hasOther, hasNum && hasText:
		return kindOther
	case hasNum:
		return kindNumeric
	case hasText:
		return kindText
	}
	// every cell missing: fall back to the documented field types
	if numericByDefault[column] {
		return kindNumeric
	}
	return kindText
}

// Clean returns a copy with every missing cell replaced: -1 in numeric
// columns, "Unavailable" in text columns. Columns that are neither
// pass through untouched. Cleaning an already-clean table changes
// nothing.
func (t *Table) Clean() *Table {
	out := t.copyStructure()
	out.rows = t.rows
	for _, c := range t.columns {
		kind := t.kindOf(c)
		cells := make([]any, t.rows)
		for i, v := range t.cells[c] {
			if v == nil {
				switch kind {
				case kindNumeric:
					v = NumericSentinel
				case kindText:
					v = TextSentinel
				}
			}
			cells[i] = v
		}
		out.cells[c] = cells
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func supportedOp(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	}
	return false
}

func matches(cell any, op string, value any) bool {
	if cn, ok := toFloat(cell); ok {
		if vn, ok := toFloat(value); ok {
			switch op {
			case "==":
				return cn == vn
			case "!=":
				return cn != vn
			case "<":
				return cn < vn
			case "<=":
				return cn <= vn
			case ">":
				return cn > vn
			case ">=":
				return cn >= vn
			}
		}
	}
	if cs, ok := cell.(string); ok {
		if vs, ok := value.(string); ok {
			switch op {
			case "==":
				return cs == vs
			case "!=":
				return cs != vs
			case "<":
				return cs < vs
			case "<=":
				return cs <= vs
			case ">":
				return cs > vs
			case ">=":
				return cs >= vs
			}
		}
	}
	// missing cells and type mismatches only ever satisfy "!="
	switch op {
	case "==":
		return cell == nil && value == nil
	case "!=":
		return cell != nil || value != nil
	}
	return false
}

// Filter returns the rows where `column op value` holds. Supported
// operators are ==, !=, <, <=, > and >=.
func (t *Table) Filter(column, op string, value any) (*Table, error) {
	if !supportedOp(op) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOperator, op)
	}
	if !t.HasColumn(column) {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	out := t.copyStructure()
	for i := 0; i < t.rows; i++ {
		if matches(t.Value(column, i), op, value) {
			out.AppendRow(t.Row(i))
		}
	}
	return out, nil
}

// FindByName looks a school up by its exact name, against whichever
// name column the table carries. A miss is a zero-row table, never an
// error.
func (t *Table) FindByName(name string) *Table {
	column := "school_name"
	if !t.HasColumn(column) {
		column = "school.name"
	}
	if !t.HasColumn(column) {
		return t.copyStructure()
	}
	out, err := t.Filter(column, "==", name)
	if err != nil {
		return t.copyStructure()
	}
	return out
}

// SortBy returns a copy sorted ascending by the column, stable.
// Missing cells sort last.
func (t *Table) SortBy(column string) (*Table, error) {
	if !t.HasColumn(column) {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	order := make([]int, t.rows)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return cellLess(t.Value(column, order[a]), t.Value(column, order[b]))
	})

	out := t.copyStructure()
	for _, i := range order {
		out.AppendRow(t.Row(i))
	}
	return out, nil
}

func cellLess(a, b any) bool {
	if b == nil {
		return false
	}
	if a == nil {
		return true
	}
	an, aNum := toFloat(a)
	bn, bNum := toFloat(b)
	if aNum && bNum {
		return an < bn
	}
	if aNum != bNum {
		// numbers before text
		return aNum
	}
	as, _ := a.(string)
	bs, _ := b.(string)
	return as < bs
}

// DistinctStrings returns the distinct non-missing string values of a
// column in order of first appearance.
func (t *Table) DistinctStrings(column string) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range t.cells[column] {
		s, ok := v.(string)
		if !ok || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
