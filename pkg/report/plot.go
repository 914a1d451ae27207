package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type PlotOptions struct {
	Width  vg.Length
	Height vg.Length
	LogX   bool
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Width: 6 * vg.Inch, Height: 4 * vg.Inch}
}

// PlotPath is base without its extension, suffixed with _<col>.png.
func PlotPath(base string, col int) string {
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s_%d.png", base, col)
}

// WritePlots saves one graph per requested column against frequency and
// returns the written paths.
func WritePlots(t *Table, base string, columns []int, opts PlotOptions) ([]string, error) {
	paths := make([]string, 0, len(columns))
	for _, col := range columns {
		p, err := NewPlot(t, col, opts)
		if err != nil {
			return paths, err
		}
		path := PlotPath(base, col)
		if err := p.Save(opts.Width, opts.Height, path); err != nil {
			return paths, fmt.Errorf("saving plot %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func NewPlot(t *Table, col int, opts PlotOptions) (*plot.Plot, error) {
	x, y, err := t.Series(col)
	if err != nil {
		return nil, err
	}

	if opts.LogX && len(x) > 0 && x[0] <= 0 {
		return nil, fmt.Errorf("column %d: logarithmic frequency axis starts at %g Hz", col, x[0])
	}

	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}

	p := plot.New()
	p.X.Label.Text = fmt.Sprintf("Frequency / %s", t.Columns[0].Unit)
	p.Y.Label.Text = fmt.Sprintf("%s / %s", t.Columns[col].Header, t.Columns[col].Unit)
	if opts.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("column %d: %w", col, err)
	}
	p.Add(line)

	return p, nil
}
