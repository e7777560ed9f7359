package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch
)

// Curve is one labelled line of a plot
type Curve struct {
	Label string
	X     []float64
	Y     []float64
}

// Group is one labelled box of a boxplot
type Group struct {
	Label  string
	Values []float64
}

func (c Curve) xys(keep func(x, y float64) bool) (plotter.XYs, error) {
	if len(c.X) != len(c.Y) {
		return nil, errors.NewInvalid("curve %s: %d x values for %d y values", c.Label, len(c.X), len(c.Y))
	}
	pts := make(plotter.XYs, 0, len(c.X))
	for i := range c.X {
		if keep != nil && !keep(c.X[i], c.Y[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: c.X[i], Y: c.Y[i]})
	}
	if len(pts) == 0 {
		return nil, errors.NewInvalid("curve %s has no plottable points", c.Label)
	}
	return pts, nil
}

func addCurves(p *plot.Plot, curves []Curve, keep func(x, y float64) bool) error {
	if len(curves) == 0 {
		return errors.NewInvalid("no curves to plot")
	}
	for i, c := range curves {
		pts, err := c.xys(keep)
		if err != nil {
			return err
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(c.Label, line)
	}
	return nil
}

func save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	log.Infof("Saved %s", path)
	return nil
}

// PlotCCDF draws latency CCDF curves on a logarithmic y axis.
// Points with a CCDF of zero cannot be drawn on that axis and are dropped.
func PlotCCDF(path, title string, curves []Curve) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Latency (ms)"
	p.Y.Label.Text = "CCDF"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if err := addCurves(p, curves, func(_, y float64) bool { return y > 0 }); err != nil {
		return err
	}
	return save(p, path)
}

// PlotPSR draws packet success rate against distance
func PlotPSR(path, title string, curves []Curve) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Distance (km)"
	p.Y.Label.Text = "Packet Success Rate"
	p.Y.Min = 0
	p.Y.Max = 1
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if err := addCurves(p, curves, nil); err != nil {
		return err
	}
	return save(p, path)
}

// PlotBoxes draws one box per group with its mean marked
func PlotBoxes(path, title, yLabel string, groups []Group) error {
	if len(groups) == 0 {
		return errors.NewInvalid("no groups to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	width := vg.Points(40)
	names := make([]string, len(groups))
	means := make(plotter.XYs, len(groups))
	for i, g := range groups {
		if len(g.Values) == 0 {
			return errors.NewInvalid("group %s has no values", g.Label)
		}
		box, err := plotter.NewBoxPlot(width, float64(i), plotter.Values(g.Values))
		if err != nil {
			return err
		}
		box.FillColor = plotutil.Color(i)
		p.Add(box)

		names[i] = g.Label
		means[i].X = float64(i)
		means[i].Y = stat.Mean(g.Values, nil)
	}

	marks, err := plotter.NewScatter(means)
	if err != nil {
		return err
	}
	marks.GlyphStyle.Shape = draw.TriangleGlyph{}
	marks.GlyphStyle.Color = plotutil.Color(len(groups))
	p.Add(marks)
	p.NominalX(names...)
	return save(p, path)
}
