// Package chart renders the descriptive charts with gonum/plot.
package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rmonroe/shotline/schema"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Input carries the aggregates the charts are drawn from.
type Input struct {
	Yearly    []schema.YearSummary
	Boroughs  []schema.GroupCount
	VictimSex []schema.GroupCount
}

// RenderAll renders every chart kind into dir and returns the written file
// paths in render order. Rendering is purely presentational; a failure on
// any chart aborts the remainder.
func RenderAll(dir string, input Input) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory %s: %w", dir, err)
	}

	var files []string
	for _, kind := range schema.AllChartKinds {
		path := filepath.Join(dir, string(kind)+".png")
		var err error
		switch kind {
		case schema.BoroughChart:
			err = renderGroupBars(path, "Incidents by Borough", "Incidents", input.Boroughs)
		case schema.YearlyChart:
			err = renderYearlyLine(path, "Incidents per Year", "Incidents", input.Yearly, false)
		case schema.DeathsChart:
			err = renderYearlyLine(path, "Deaths per Year", "Deaths", input.Yearly, true)
		case schema.VictimSexChart:
			err = renderGroupBars(path, "Incidents by Victim Sex", "Incidents", input.VictimSex)
		}
		if err != nil {
			return files, fmt.Errorf("failed to render %s chart: %w", kind, err)
		}
		files = append(files, path)
	}
	return files, nil
}

// renderGroupBars draws a bar chart of counts per categorical label.
func renderGroupBars(path, title, yLabel string, counts []schema.GroupCount) error {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = yLabel

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, count := range counts {
		values[i] = float64(count.Count)
		labels[i] = schema.TitleBorough(count.Label)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// renderYearlyLine draws a line chart of a yearly total.
func renderYearlyLine(path, title, yLabel string, summaries []schema.YearSummary, deaths bool) error {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = yLabel

	points := make(plotter.XYs, len(summaries))
	for i, summary := range summaries {
		points[i].X = float64(summary.Year)
		if deaths {
			points[i].Y = float64(summary.TotalDeaths)
		} else {
			points[i].Y = float64(summary.TotalIncidents)
		}
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return err
	}
	line.Width = vg.Points(2)
	p.Add(line, plotter.NewGrid())

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
