package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	service "github.com/okian/swimsplit/internal/app"
)

// RenderHTML writes the chart page for one analysis: lap times, stroke
// tempo and per-lap stroke counts.
func RenderHTML(w io.Writer, a *service.Analysis) error {
	page := components.NewPage()
	page.SetPageTitle(fmt.Sprintf("%s - %s", a.Race.Swimmer, a.Race.Describe()))

	page.AddCharts(lapTimeChart(a), strokeCountChart(a))
	if tempo := tempoChart(a); tempo != nil {
		page.AddCharts(tempo)
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render report page: %w", err)
	}
	return nil
}

// WriteHTMLFile renders the chart page into dir, named after the
// swimmer the way the capture rig always has.
func WriteHTMLFile(dir string, a *service.Analysis) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	name := strings.ReplaceAll(a.Race.Swimmer, " ", "_")
	if name == "" {
		name = "race"
	}
	path := filepath.Join(dir, name+"_race_report.html")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := RenderHTML(f, a); err != nil {
		return "", err
	}
	return path, nil
}

func lapTimeChart(a *service.Analysis) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Lap Times", Subtitle: a.Race.Describe()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "seconds"}),
	)

	labels := make([]string, 0, len(a.Laps))
	data := make([]opts.BarData, 0, len(a.Laps))
	for _, lap := range a.Laps {
		labels = append(labels, "Lap "+strconv.Itoa(lap.LapIndex+1))
		data = append(data, opts.BarData{Value: round2(lap.LapTime)})
	}
	bar.SetXAxis(labels).AddSeries("lap time", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))
	return bar
}

func strokeCountChart(a *service.Analysis) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Stroke Count per Lap"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "strokes"}),
	)

	labels := make([]string, 0, len(a.Laps))
	data := make([]opts.BarData, 0, len(a.Laps))
	for _, lap := range a.Laps {
		labels = append(labels, "Lap "+strconv.Itoa(lap.LapIndex+1))
		data = append(data, opts.BarData{Value: lap.StrokeCount})
	}
	bar.SetXAxis(labels).AddSeries("strokes", data)
	return bar
}

// tempoChart plots the time between consecutive strokes; nil when the
// capture has fewer than two strokes.
func tempoChart(a *service.Analysis) *charts.Line {
	if len(a.StrokeTempo) == 0 {
		return nil
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Stroke Intervals (Tempo)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "interval"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "seconds"}),
	)

	labels := make([]string, 0, len(a.StrokeTempo))
	data := make([]opts.LineData, 0, len(a.StrokeTempo))
	for i, gap := range a.StrokeTempo {
		labels = append(labels, strconv.Itoa(i+1))
		data = append(data, opts.LineData{Value: round2(gap)})
	}
	line.SetXAxis(labels).AddSeries("tempo", data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(true)}))
	return line
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
