// Package metrics turns raw analytic rows into chart-ready series and
// summary indicators. Everything here is pure and deterministic.
package metrics

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/and161185/hr-console/model"
)

const topSize = 10

// DepartmentReport is the aggregation of the departments-above-average rows.
type DepartmentReport struct {
	Series     model.Series // one point per row, insertion order
	Top        model.Series // up to 10 points, by value descending
	Indicators []model.Indicator
}

// QuarterReport is the aggregation of the hires-per-quarter rows.
type QuarterReport struct {
	Quarters   model.Series // Q1..Q4 totals
	Top        []ComboTotal // up to 10 (department, job) pairs by total
	Indicators []model.Indicator
}

// ComboTotal is the yearly hire total for one (department, job) pair.
type ComboTotal struct {
	Department string
	Job        string
	Total      int
}

// AggregateDepartments builds the department dashboard data from raw rows.
func AggregateDepartments(rows []model.DepartmentRow) DepartmentReport {
	series := model.Series{
		Labels: make([]string, 0, len(rows)),
		Values: make([]int, 0, len(rows)),
	}
	total := 0
	for _, row := range rows {
		series.Labels = append(series.Labels, row.Department)
		series.Values = append(series.Values, row.Hired.Int())
		total += row.Hired.Int()
	}

	top := "n/a"
	if series.Len() > 0 {
		idx := argMax(series.Values)
		top = fmt.Sprintf("%s (%d)", series.Labels[idx], series.Values[idx])
	}

	return DepartmentReport{
		Series: series,
		Top:    topN(series, topSize),
		Indicators: []model.Indicator{
			{Label: "Total hires", Value: strconv.Itoa(total)},
			{Label: "Top department", Value: top},
			{Label: "Departments above average", Value: strconv.Itoa(series.Len())},
		},
	}
}

// AggregateQuarters builds the quarterly dashboard data from raw rows.
func AggregateQuarters(rows []model.QuarterRow) QuarterReport {
	var totals [4]int
	combos := make([]ComboTotal, 0, len(rows))
	for _, row := range rows {
		q := [4]int{row.Q1.Int(), row.Q2.Int(), row.Q3.Int(), row.Q4.Int()}
		for i, v := range q {
			totals[i] += v
		}
		combos = append(combos, ComboTotal{
			Department: row.Department,
			Job:        row.Job,
			Total:      q[0] + q[1] + q[2] + q[3],
		})
	}

	quarters := model.Series{
		Labels: []string{"Q1", "Q2", "Q3", "Q4"},
		Values: totals[:],
	}

	grand := totals[0] + totals[1] + totals[2] + totals[3]
	peakIdx := argMax(quarters.Values)
	variation := totals[3] - totals[0]
	sign := "+"
	if variation < 0 {
		sign = "-"
	}

	sort.SliceStable(combos, func(i, j int) bool { return combos[i].Total > combos[j].Total })
	if len(combos) > topSize {
		combos = combos[:topSize]
	}

	return QuarterReport{
		Quarters: quarters,
		Top:      combos,
		Indicators: []model.Indicator{
			{Label: "Total hires", Value: strconv.Itoa(grand)},
			{Label: "Peak quarter", Value: fmt.Sprintf("%s (%d)", quarters.Labels[peakIdx], quarters.Values[peakIdx])},
			{Label: "Q1 to Q4 variation", Value: sign + strconv.Itoa(abs(variation))},
		},
	}
}

// argMax returns the index of the largest value, first occurrence winning ties.
func argMax(values []int) int {
	idx := 0
	for i, v := range values {
		if v > values[idx] {
			idx = i
		}
	}
	return idx
}

// topN returns up to n points of s sorted by value descending. Ties keep the
// original order.
func topN(s model.Series, n int) model.Series {
	type point struct {
		label string
		value int
	}
	points := make([]point, s.Len())
	for i := range points {
		points[i] = point{label: s.Labels[i], value: s.Values[i]}
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].value > points[j].value })
	if len(points) > n {
		points = points[:n]
	}

	top := model.Series{
		Labels: make([]string, len(points)),
		Values: make([]int, len(points)),
	}
	for i, p := range points {
		top.Labels[i] = p.label
		top.Values[i] = p.value
	}
	return top
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
