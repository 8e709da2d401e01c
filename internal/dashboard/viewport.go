// Package dashboard sequences aggregated metrics into a multi-widget
// dashboard: an indicators block, a primary chart, secondary charts and a
// Top-10 table. The ViewPort abstraction keeps the pipeline independent of
// the rendering surface.
package dashboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/and161185/hr-console/internal/chart"
	"github.com/and161185/hr-console/model"
)

// ViewPort renders dashboard widgets onto some surface. Implementations must
// fully replace a widget when the same slot is rendered again.
type ViewPort interface {
	RenderIndicators(slot string, items []model.Indicator) error
	RenderChart(slot string, spec model.ChartSpec) error
	RenderTable(slot string, table model.Table) error
}

// TermView writes indicators and tables to a terminal and saves chart
// snapshots as PNG files. When the chart engine is unavailable it degrades to
// a text notice instead of failing the dashboard.
type TermView struct {
	Out    io.Writer
	Engine *chart.Engine
	Dir    string
}

// NewTermView creates a terminal viewport saving chart images under dir.
func NewTermView(out io.Writer, engine *chart.Engine, dir string) *TermView {
	return &TermView{Out: out, Engine: engine, Dir: dir}
}

// RenderIndicators prints the indicator block in order.
func (v *TermView) RenderIndicators(slot string, items []model.Indicator) error {
	fmt.Fprintln(v.Out)
	w := tabwriter.NewWriter(v.Out, 0, 4, 2, ' ', 0)
	for _, item := range items {
		fmt.Fprintf(w, "%s:\t%s\n", item.Label, item.Value)
	}
	return w.Flush()
}

// RenderChart renders the chart into its engine slot and writes the PNG next
// to the other snapshots.
func (v *TermView) RenderChart(slot string, spec model.ChartSpec) error {
	err := v.Engine.Render(slot, spec)
	if errors.Is(err, chart.ErrNotReady) {
		fmt.Fprintf(v.Out, "\n%s: chart rendering unavailable, text results only\n", spec.Title)
		return nil
	}
	if err != nil {
		return err
	}

	inst, ok := v.Engine.Snapshot(slot)
	if !ok || len(inst.PNG) == 0 {
		fmt.Fprintf(v.Out, "\n%s: nothing to draw\n", spec.Title)
		return nil
	}

	if err := os.MkdirAll(v.Dir, 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(v.Dir, slot+".png")
	if err := os.WriteFile(path, inst.PNG, 0o644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	fmt.Fprintf(v.Out, "\n%s: saved to %s\n", spec.Title, path)
	return nil
}

// RenderTable prints the table with a rank column.
func (v *TermView) RenderTable(slot string, table model.Table) error {
	fmt.Fprintln(v.Out)
	w := tabwriter.NewWriter(v.Out, 0, 4, 2, ' ', 0)
	writeRow(w, table.Headers)
	for _, row := range table.Rows {
		writeRow(w, row)
	}
	return w.Flush()
}

func writeRow(w io.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, cell)
	}
	fmt.Fprintln(w)
}
