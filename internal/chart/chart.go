// Package chart renders one grey-line chart per receiver with gonum/plot and
// persists it under the configured output directory.
package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/grey/greyline/internal/fill"
	"github.com/grey/greyline/internal/segment"
	"github.com/grey/greyline/internal/series"
)

// Renderer draws and writes charts. Dir is created on first write.
type Renderer struct {
	Dir      string
	Format   string // png or svg
	WidthIn  float64
	HeightIn float64
}

// Input is everything one receiver's chart needs: six curves, two fill
// decisions, and the year for the file name.
type Input struct {
	Year        int
	Transmitter series.DaySeries
	Receiver    series.DaySeries
	Midpoint    series.DaySeries
	TxFill      fill.Regions
	RxFill      fill.Regions
}

var (
	riseColor = color.RGBA{R: 255, A: 255}
	setColor  = color.RGBA{A: 255}

	// Transmitter night is light grey, receiver night a faint blue, matching
	// the two shading layers on the combined chart.
	txShade = color.RGBA{R: 211, G: 211, B: 211, A: 76}
	rxShade = color.RGBA{B: 255, A: 25}
)

// Render draws the chart and writes it to disk, returning the written path.
func (r *Renderer) Render(in Input) (string, error) {
	tx, rx, mp := in.Transmitter, in.Receiver, in.Midpoint

	xs := make([]float64, len(tx.Dates))
	for i, d := range tx.Dates {
		xs[i] = float64(d.Unix())
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%d Sunrise/Sunset Analysis for circuit: %s to %s",
		in.Year, tx.Location.Name, rx.Location.Name)
	p.X.Tick.Marker = plot.TimeTicks{Format: "Jan 02"}
	p.Y.Tick.Marker = plot.ConstantTicks(hourTicks())
	p.Y.Min, p.Y.Max = 0, 1440
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	// Shading goes in first so the curves draw on top of it.
	for _, band := range in.TxFill.Bands {
		if err := addBand(p, xs, band, txShade); err != nil {
			return "", fmt.Errorf("transmitter shading: %w", err)
		}
	}
	for _, band := range in.RxFill.Bands {
		if err := addBand(p, xs, band, rxShade); err != nil {
			return "", fmt.Errorf("receiver shading: %w", err)
		}
	}

	txStyle := draw.LineStyle{Width: vg.Points(2), Dashes: []vg.Length{vg.Points(2), vg.Points(3)}}
	rxStyle := draw.LineStyle{Width: vg.Points(1)}
	mpStyle := draw.LineStyle{Width: vg.Points(1), Dashes: []vg.Length{vg.Points(6), vg.Points(2), vg.Points(1), vg.Points(2)}}

	curves := []struct {
		label  string
		values []float64
		style  draw.LineStyle
		color  color.Color
	}{
		{tx.Location.Name + " sr", tx.Sunrise, txStyle, riseColor},
		{tx.Location.Name + " ss", tx.Sunset, txStyle, setColor},
		{rx.Location.Name + " sr", rx.Sunrise, rxStyle, riseColor},
		{rx.Location.Name + " ss", rx.Sunset, rxStyle, setColor},
		{"Midpoint sr", mp.Sunrise, mpStyle, riseColor},
		{"Midpoint ss", mp.Sunset, mpStyle, setColor},
	}
	for _, c := range curves {
		st := c.style
		st.Color = c.color
		if err := addCurve(p, xs, c.values, st, c.label); err != nil {
			return "", fmt.Errorf("curve %s: %w", c.label, err)
		}
	}

	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	name := fmt.Sprintf("%d_%s_%s.%s", in.Year, tx.Location.Name, Sanitize(rx.Location.Name), r.Format)
	path := filepath.Join(r.Dir, name)
	if err := p.Save(vg.Length(r.WidthIn)*vg.Inch, vg.Length(r.HeightIn)*vg.Inch, path); err != nil {
		return "", fmt.Errorf("saving chart: %w", err)
	}

	return path, nil
}

// addCurve adds one value sequence as line segments, breaking at missing
// values so polar gaps stay gaps. The legend entry is added once.
func addCurve(p *plot.Plot, xs, values []float64, style draw.LineStyle, label string) error {
	labelled := false
	for _, r := range runs(values) {
		pts := make(plotter.XYs, 0, r.end-r.start)
		for i := r.start; i < r.end; i++ {
			pts = append(pts, plotter.XY{X: xs[i], Y: values[i]})
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle = style
		p.Add(line)
		if !labelled {
			p.Legend.Add(label, line)
			labelled = true
		}
	}
	return nil
}

// addBand shades the area between a band's boundary curves, one polygon per
// contiguous run where both bounds are present.
func addBand(p *plot.Plot, xs []float64, band fill.Band, c color.Color) error {
	present := make([]float64, len(band.Lower))
	for i := range present {
		if segment.IsMissing(band.Lower[i]) || segment.IsMissing(band.Upper[i]) {
			present[i] = segment.Missing()
		}
	}

	for _, r := range runs(present) {
		if r.end-r.start < 2 {
			continue
		}
		pts := make(plotter.XYs, 0, 2*(r.end-r.start))
		for i := r.start; i < r.end; i++ {
			pts = append(pts, plotter.XY{X: xs[i], Y: band.Lower[i]})
		}
		for i := r.end - 1; i >= r.start; i-- {
			pts = append(pts, plotter.XY{X: xs[i], Y: band.Upper[i]})
		}
		poly, err := plotter.NewPolygon(pts)
		if err != nil {
			return err
		}
		poly.Color = c
		poly.LineStyle.Width = 0
		p.Add(poly)
	}
	return nil
}

type run struct {
	start, end int // half-open index range
}

// runs returns the contiguous index ranges of non-missing values.
func runs(values []float64) []run {
	var rs []run
	start := -1
	for i, v := range values {
		switch {
		case segment.IsMissing(v) && start >= 0:
			rs = append(rs, run{start, i})
			start = -1
		case !segment.IsMissing(v) && start < 0:
			start = i
		}
	}
	if start >= 0 {
		rs = append(rs, run{start, len(values)})
	}
	return rs
}

// hourTicks labels every hour HH:MM on the minute-of-day axis, with unlabeled
// minor ticks on the half hour.
func hourTicks() []plot.Tick {
	var ticks []plot.Tick
	for h := 0; h <= 24; h++ {
		ticks = append(ticks, plot.Tick{
			Value: float64(h * 60),
			Label: fmt.Sprintf("%02d:00", h),
		})
		if h < 24 {
			ticks = append(ticks, plot.Tick{Value: float64(h*60 + 30)})
		}
	}
	return ticks
}

var sanitizer = strings.NewReplacer(" ", "_", ".", "", ",", "", "/", "")

// Sanitize makes a receiver name safe for use in a file name.
func Sanitize(name string) string {
	return sanitizer.Replace(name)
}
