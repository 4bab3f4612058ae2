package chart

import (
	"errors"
	"fmt"
)

// Kind is the chart type.
type Kind string

const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// ErrUnknownField is returned when an encoding names a column the frame lacks.
var ErrUnknownField = errors.New("unknown field")

// Encoding maps chart channels to frame columns.
type Encoding struct {
	Values string
	Names  string
	X      string
	Y      string
	Color  string
}

// Slice is one pie sector. Rows is the number of records folded into it,
// honouring WeightColumn.
type Slice struct {
	Label string
	Value float64
	Rows  int
}

// Point is one scatter marker.
type Point struct {
	X float64
	Y float64
}

// Series is a group of scatter points sharing a color value.
type Series struct {
	Name   string
	Points []Point
}

// Spec describes a chart for the rendering layer. Specs are built fresh per
// interaction and never mutated afterwards.
type Spec struct {
	Kind     Kind
	Title    string
	Encoding Encoding
	Slices   []Slice
	Series   []Series
	// Empty marks a chart without data; it renders as a "No data" placeholder.
	Empty bool
}

// PointCount returns the number of scatter points across all series.
func (s Spec) PointCount() int {
	n := 0
	for _, series := range s.Series {
		n += len(series.Points)
	}
	return n
}

// Total returns the sum of pie slice values.
func (s Spec) Total() float64 {
	var total float64
	for _, slice := range s.Slices {
		total += slice.Value
	}
	return total
}

// EmptySpec builds the placeholder spec used for empty or rejected selections.
func EmptySpec(kind Kind, title string, enc Encoding) Spec {
	return Spec{Kind: kind, Title: title, Encoding: enc, Empty: true}
}

func requireColumns(frame Frame, fields ...string) error {
	for _, field := range fields {
		if field == "" {
			return fmt.Errorf("%w: empty field name", ErrUnknownField)
		}
		if !frame.HasColumn(field) {
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}
	return nil
}
