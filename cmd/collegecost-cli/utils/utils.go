package utils

import (
	"fmt"
	"os"

	"collegecost-backend/lib/table"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
)

func NewTable() prettytable.Writer {
	t := prettytable.NewWriter()
	t.SetStyle(prettytable.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

// FormatCell renders one table cell for terminal output, translating
// the missing-value sentinels into something a human reads correctly.
func FormatCell(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case float64:
		if n == table.NumericSentinel {
			return "Unavailable"
		}
		return fmt.Sprintf("%.2f", n)
	case string:
		return n
	}
	return fmt.Sprintf("%v", v)
}

// FormatCurrency renders a dollar amount, honoring the numeric
// sentinel.
func FormatCurrency(v float64) string {
	if v == table.NumericSentinel {
		return "Unavailable"
	}
	return fmt.Sprintf("$%.2f", v)
}
