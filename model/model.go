// Package model contains core data types for the project.
package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexInt is an integer that tolerates the loose typing of the backend:
// JSON numbers, numeric strings, null and missing fields all decode, with
// anything non-numeric coerced to 0.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexInt(n)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(v)
	return nil
}

// Int returns the value as a plain int.
func (f FlexInt) Int() int { return int(f) }

// DepartmentRow is one record of the departments-above-average metric.
type DepartmentRow struct {
	ID         FlexInt `json:"id"`
	Department string  `json:"department"`
	Hired      FlexInt `json:"hired"`
}

// QuarterRow is one record of the hires-per-quarter metric.
type QuarterRow struct {
	Department string  `json:"department"`
	Job        string  `json:"job"`
	Q1         FlexInt `json:"q1"`
	Q2         FlexInt `json:"q2"`
	Q3         FlexInt `json:"q3"`
	Q4         FlexInt `json:"q4"`
}

// Series is a chart-ready list of labeled integer points.
// Labels and Values are always the same length.
type Series struct {
	Labels []string
	Values []int
}

// Len returns the number of points in the series.
func (s Series) Len() int { return len(s.Values) }

// Indicator is one pre-formatted summary statistic. Order within a list of
// indicators is presentation-significant.
type Indicator struct {
	Label string
	Value string
}

// ChartKind selects the chart type for a rendered widget.
type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartLine ChartKind = "line"
	ChartPie  ChartKind = "pie"
)

// ChartSpec describes one renderable chart. A spec maps to exactly one slot.
type ChartSpec struct {
	Kind       ChartKind
	Horizontal bool // bar charts only
	Title      string
	Series     Series
}

// Table is a rendered tabular view, such as a Top-10 ranking.
type Table struct {
	Headers []string
	Rows    [][]string
}

// BackupFile is one backup artifact produced by the backend.
type BackupFile struct {
	Name   string `json:"archivo"`
	Path   string `json:"ruta"`
	Format string `json:"formato"`
	Date   string `json:"fecha"`
}
