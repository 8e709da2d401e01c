package dashboard

import (
	"strconv"

	"github.com/and161185/hr-console/internal/chart"
	"github.com/and161185/hr-console/internal/metrics"
	"github.com/and161185/hr-console/model"
)

// Slot identifiers are stable across queries so that re-running a query
// replaces every widget instead of appending new ones.
const (
	SlotDeptIndicators = "dp-kpis"
	SlotDeptMain       = "dp-main"
	SlotDeptTop        = "dp-top"
	SlotDeptShare      = "dp-share"
	SlotDeptTable      = "dp-table"

	SlotQuarterIndicators = "qt-kpis"
	SlotQuarterMain       = "qt-main"
	SlotQuarterTrend      = "qt-trend"
	SlotQuarterShare      = "qt-share"
	SlotQuarterTable      = "qt-table"
)

// Orchestrator drives a ViewPort from one aggregation result.
type Orchestrator struct {
	engine *chart.Engine
	view   ViewPort
}

// NewOrchestrator wires the chart engine and the rendering surface.
func NewOrchestrator(engine *chart.Engine, view ViewPort) *Orchestrator {
	return &Orchestrator{engine: engine, view: view}
}

// ShowDepartments renders the department dashboard. It blocks until the
// charting dependency load has settled and every widget is rendered.
func (o *Orchestrator) ShowDepartments(rep metrics.DepartmentReport) error {
	errCh := make(chan error, 1)
	o.engine.EnsureReady(func() { errCh <- o.renderDepartments(rep) })
	return <-errCh
}

func (o *Orchestrator) renderDepartments(rep metrics.DepartmentReport) error {
	if err := o.view.RenderIndicators(SlotDeptIndicators, rep.Indicators); err != nil {
		return err
	}
	if err := o.view.RenderChart(SlotDeptMain, model.ChartSpec{
		Kind:       model.ChartBar,
		Horizontal: true,
		Title:      "Hires by department",
		Series:     rep.Series,
	}); err != nil {
		return err
	}
	if err := o.view.RenderChart(SlotDeptTop, model.ChartSpec{
		Kind:   model.ChartBar,
		Title:  "Top 10 departments",
		Series: rep.Top,
	}); err != nil {
		return err
	}
	if err := o.view.RenderChart(SlotDeptShare, model.ChartSpec{
		Kind:   model.ChartPie,
		Title:  "Hiring distribution",
		Series: rep.Series,
	}); err != nil {
		return err
	}

	table := model.Table{Headers: []string{"#", "Department", "Hires"}}
	for i := range rep.Top.Labels {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i + 1),
			rep.Top.Labels[i],
			strconv.Itoa(rep.Top.Values[i]),
		})
	}
	return o.view.RenderTable(SlotDeptTable, table)
}

// ShowQuarters renders the quarterly dashboard.
func (o *Orchestrator) ShowQuarters(rep metrics.QuarterReport) error {
	errCh := make(chan error, 1)
	o.engine.EnsureReady(func() { errCh <- o.renderQuarters(rep) })
	return <-errCh
}

func (o *Orchestrator) renderQuarters(rep metrics.QuarterReport) error {
	if err := o.view.RenderIndicators(SlotQuarterIndicators, rep.Indicators); err != nil {
		return err
	}
	if err := o.view.RenderChart(SlotQuarterMain, model.ChartSpec{
		Kind:   model.ChartBar,
		Title:  "Hires by quarter",
		Series: rep.Quarters,
	}); err != nil {
		return err
	}
	if err := o.view.RenderChart(SlotQuarterTrend, model.ChartSpec{
		Kind:   model.ChartLine,
		Title:  "Quarterly trend",
		Series: rep.Quarters,
	}); err != nil {
		return err
	}
	if err := o.view.RenderChart(SlotQuarterShare, model.ChartSpec{
		Kind:   model.ChartPie,
		Title:  "Distribution by quarter",
		Series: rep.Quarters,
	}); err != nil {
		return err
	}

	table := model.Table{Headers: []string{"#", "Department", "Job", "Total"}}
	for i, combo := range rep.Top {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i + 1),
			combo.Department,
			combo.Job,
			strconv.Itoa(combo.Total),
		})
	}
	return o.view.RenderTable(SlotQuarterTable, table)
}
