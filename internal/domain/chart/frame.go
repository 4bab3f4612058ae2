package chart

import (
	"fmt"
	"strconv"
)

// Row is one record of chart input keyed by column name.
// Values are string, int or float64.
type Row map[string]any

// Frame is an ordered set of rows, the input of the chart builders.
type Frame []Row

// WeightColumn holds the number of source records a pre-aggregated row
// stands for. Rows without it count as one record.
const WeightColumn = "_records"

func weight(row Row) int {
	if w, ok := numeric(row[WeightColumn]); ok && w >= 0 {
		return int(w)
	}
	return 1
}

// HasColumn reports whether the first row carries the column. An empty
// frame has every column.
func (f Frame) HasColumn(name string) bool {
	if len(f) == 0 {
		return true
	}
	_, ok := f[0][name]
	return ok
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case fmt.Stringer:
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func label(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
