// Package chart renders the metric-versus-wins scatter with the fitted line.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"

	"mlbwar-engine/internal/domain"
	"mlbwar-engine/internal/regress"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// DefaultConfidence is the two-sided level of the band around the line.
const DefaultConfidence = 0.99

type Options struct {
	Metric     string            // x axis label, e.g. "WAR"
	Colors     map[string]string // team code -> #RRGGBB; missing teams are black
	Confidence float64           // 0 means DefaultConfidence
	Width      vg.Length
	Height     vg.Length
}

// Scatter writes one point per team-season, coloured by team, with a single
// least-squares line over all rows and its confidence band for the mean.
// The image format follows the extension of path (.png, .svg, .pdf).
func Scatter(path string, rows []domain.AggregatedRow, opts Options) error {
	x := make([]float64, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		x[i], y[i] = r.TotalMetric, float64(r.Wins)
	}
	model, err := regress.Fit(x, y)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Correlation between Total %s and Wins by Team", opts.Metric)
	p.X.Label.Text = "Total " + opts.Metric
	p.Y.Label.Text = "Wins"
	p.Add(plotter.NewGrid())

	lo, hi := floats.Min(x), floats.Max(x)
	if band := confidenceBand(x, y, model, lo, hi, level(opts.Confidence)); band != nil {
		poly, err := plotter.NewPolygon(band)
		if err != nil {
			return err
		}
		poly.Color = color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0x40}
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	line, err := plotter.NewLine(plotter.XYs{{X: lo, Y: model.Predict(lo)}, {X: hi, Y: model.Predict(hi)}})
	if err != nil {
		return err
	}
	line.LineStyle.Color = color.RGBA{B: 0xff, A: 0xff}
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)

	byTeam := map[string]plotter.XYs{}
	for _, r := range rows {
		byTeam[r.Team] = append(byTeam[r.Team], plotter.XY{X: r.TotalMetric, Y: float64(r.Wins)})
	}
	teams := make([]string, 0, len(byTeam))
	for t := range byTeam {
		teams = append(teams, t)
	}
	sort.Strings(teams)

	for _, team := range teams {
		s, err := plotter.NewScatter(byTeam[team])
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = TeamColor(opts.Colors, team)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add(team, s)
	}
	p.Legend.Top = true

	w, h := opts.Width, opts.Height
	if w == 0 || h == 0 {
		w, h = 14*vg.Inch, 8*vg.Inch
	}
	return p.Save(w, h, path)
}

func level(c float64) float64 {
	if c <= 0 || c >= 1 {
		return DefaultConfidence
	}
	return c
}

// confidenceBand traces yhat ± t*se(x) over [lo, hi] as a closed polygon.
// It is nil when there are too few rows for a residual variance.
func confidenceBand(x, y []float64, m regress.Model, lo, hi, conf float64) plotter.XYs {
	n := len(x)
	if n < 3 || hi <= lo {
		return nil
	}
	var sse float64
	for i := range x {
		r := y[i] - m.Predict(x[i])
		sse += r * r
	}
	s := math.Sqrt(sse / float64(n-2))
	mean := stat.Mean(x, nil)
	sxx := stat.Variance(x, nil) * float64(n-1)
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}.Quantile(1 - (1-conf)/2)

	const steps = 50
	upper := make(plotter.XYs, 0, steps+1)
	lower := make(plotter.XYs, 0, steps+1)
	for i := 0; i <= steps; i++ {
		xi := lo + (hi-lo)*float64(i)/steps
		half := t * s * math.Sqrt(1/float64(n)+(xi-mean)*(xi-mean)/sxx)
		yhat := m.Predict(xi)
		upper = append(upper, plotter.XY{X: xi, Y: yhat + half})
		lower = append(lower, plotter.XY{X: xi, Y: yhat - half})
	}
	for i := len(lower) - 1; i >= 0; i-- {
		upper = append(upper, lower[i])
	}
	return upper
}

// TeamColor resolves a team's #RRGGBB colour at 60% opacity, black when
// unknown or malformed.
func TeamColor(colors map[string]string, team string) color.NRGBA {
	c := color.NRGBA{A: 0x99}
	hex := colors[team]
	if len(hex) != 7 || hex[0] != '#' {
		return c
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return c
	}
	c.R, c.G, c.B = uint8(v>>16), uint8(v>>8), uint8(v)
	return c
}
