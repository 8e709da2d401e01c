package chart

import (
	"bytes"
	"fmt"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/and161185/hr-console/model"
)

const (
	chartWidth  = 640
	chartHeight = 360
)

func renderPNG(spec model.ChartSpec) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch spec.Kind {
	case model.ChartBar:
		if spec.Horizontal {
			err = horizontalBar(spec).Render(chart.PNG, &buf)
		} else {
			err = verticalBar(spec).Render(chart.PNG, &buf)
		}
	case model.ChartLine:
		err = line(spec).Render(chart.PNG, &buf)
	case model.ChartPie:
		err = pie(spec).Render(chart.PNG, &buf)
	default:
		return nil, fmt.Errorf("unknown chart kind %q", spec.Kind)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func verticalBar(spec model.ChartSpec) chart.BarChart {
	bars := make([]chart.Value, 0, spec.Series.Len())
	for i, label := range spec.Series.Labels {
		bars = append(bars, chart.Value{Label: label, Value: float64(spec.Series.Values[i])})
	}
	return chart.BarChart{
		Title:    spec.Title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 40,
		Bars:     bars,
	}
}

func horizontalBar(spec model.ChartSpec) chart.StackedBarChart {
	// zero-height bars draw nothing and break the stacked layout, skip them
	bars := make([]chart.StackedBar, 0, spec.Series.Len())
	for i, label := range spec.Series.Labels {
		v := spec.Series.Values[i]
		if v <= 0 {
			continue
		}
		bars = append(bars, chart.StackedBar{
			Name: label,
			Values: []chart.Value{
				{Label: strconv.Itoa(v), Value: float64(v)},
			},
		})
	}
	return chart.StackedBarChart{
		Title:        spec.Title,
		Width:        chartWidth,
		Height:       chartHeight,
		IsHorizontal: true,
		Bars:         bars,
	}
}

func line(spec model.ChartSpec) chart.Chart {
	xs := make([]float64, spec.Series.Len())
	ys := make([]float64, spec.Series.Len())
	ticks := make([]chart.Tick, spec.Series.Len())
	for i := range spec.Series.Values {
		xs[i] = float64(i + 1)
		ys[i] = float64(spec.Series.Values[i])
		ticks[i] = chart.Tick{Value: xs[i], Label: spec.Series.Labels[i]}
	}
	return chart.Chart{
		Title:  spec.Title,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Ticks: ticks},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: xs, YValues: ys},
		},
	}
}

func pie(spec model.ChartSpec) chart.PieChart {
	// zero slices contribute nothing and upset the layout math, skip them
	values := make([]chart.Value, 0, spec.Series.Len())
	for i, label := range spec.Series.Labels {
		v := spec.Series.Values[i]
		if v <= 0 {
			continue
		}
		values = append(values, chart.Value{Label: label, Value: float64(v)})
	}
	return chart.PieChart{
		Title:  spec.Title,
		Width:  chartWidth,
		Height: chartHeight,
		Values: values,
	}
}
