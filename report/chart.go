package report

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/amicobudino/leukemia-analysis/pkg/errors"
)

// BarChart renders the test accuracies of the runs as a bar chart and saves
// it as a PNG at path.
func BarChart(path string, results []RunResult) error {
	if len(results) == 0 {
		return errors.NewValueError("BarChart", "no results to plot")
	}

	p := plot.New()
	p.Title.Text = "Held-out test accuracy"
	p.Y.Label.Text = "accuracy"
	p.Y.Min = 0
	p.Y.Max = 1

	values := make(plotter.Values, len(results))
	names := make([]string, len(results))
	for i, r := range results {
		values[i] = r.TestAccuracy
		names[i] = r.Name
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return errors.Wrap(err, "BarChart")
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(2)

	p.Add(bars)
	p.NominalX(names...)

	if err := p.Save(7*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "BarChart: save %s", path)
	}
	return nil
}
