// Package regress fits wins against a team's summed metric.
package regress

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"mlbwar-engine/internal/domain"

	"gonum.org/v1/gonum/stat"
)

var ErrInsufficientData = errors.New("not enough rows to fit and evaluate")

// Model is wins = Intercept + Slope*metric.
type Model struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

func (m Model) Predict(metric float64) float64 { return m.Intercept + m.Slope*metric }

// PredictRecord returns projected wins and the implied losses over a season.
func (m Model) PredictRecord(metric float64, seasonGames int) (wins, losses float64) {
	wins = m.Predict(metric)
	return wins, float64(seasonGames) - wins
}

// Fit is ordinary least squares with one predictor.
func Fit(x, y []float64) (Model, error) {
	if len(x) != len(y) {
		return Model{}, fmt.Errorf("x has %d values, y has %d", len(x), len(y))
	}
	if len(x) < 2 {
		return Model{}, ErrInsufficientData
	}
	if stat.Variance(x, nil) == 0 {
		return Model{}, fmt.Errorf("%w: metric is constant", ErrInsufficientData)
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return Model{Intercept: alpha, Slope: beta}, nil
}

type Partition struct {
	Train []domain.AggregatedRow
	Test  []domain.AggregatedRow
}

// Split shuffles with a seeded source and holds out ceil(n*testFrac)
// rows. The same input order and seed always give the same split.
func Split(rows []domain.AggregatedRow, testFrac float64, seed int64) (Partition, error) {
	n := len(rows)
	nTest := int(math.Ceil(float64(n) * testFrac))
	if nTest < 1 || n-nTest < 2 {
		return Partition{}, fmt.Errorf("%w: %d rows", ErrInsufficientData, n)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	var s Partition
	for i, idx := range perm {
		if i < nTest {
			s.Test = append(s.Test, rows[idx])
		} else {
			s.Train = append(s.Train, rows[idx])
		}
	}
	return s, nil
}

func xy(rows []domain.AggregatedRow) (x, y []float64) {
	x = make([]float64, len(rows))
	y = make([]float64, len(rows))
	for i, r := range rows {
		x[i] = r.TotalMetric
		y[i] = float64(r.Wins)
	}
	return x, y
}

type Options struct {
	TestFraction float64
	Seed         int64
}

type Report struct {
	Model   Model             `json:"model"`
	Rows    int               `json:"rows"`
	Train   int               `json:"train"`
	Test    int               `json:"test"`
	Metrics Metrics           `json:"metrics"`
	Buckets map[string]string `json:"buckets"`
}

// Analyze splits, fits on the training rows and scores the held-out rows.
func Analyze(rows []domain.AggregatedRow, opts Options) (Report, error) {
	split, err := Split(rows, opts.TestFraction, opts.Seed)
	if err != nil {
		return Report{}, err
	}

	model, err := Fit(xy(split.Train))
	if err != nil {
		return Report{}, err
	}

	xTest, yTest := xy(split.Test)
	pred := make([]float64, len(xTest))
	for i, x := range xTest {
		pred[i] = model.Predict(x)
	}
	m := Evaluate(yTest, pred)

	return Report{
		Model:   model,
		Rows:    len(rows),
		Train:   len(split.Train),
		Test:    len(split.Test),
		Metrics: m,
		Buckets: m.Buckets(),
	}, nil
}

type Prediction struct {
	Metric float64 `json:"metric"`
	Wins   float64 `json:"wins"`
	Losses float64 `json:"losses"`
}

func (m Model) Prediction(metric float64, seasonGames int) Prediction {
	w, l := m.PredictRecord(metric, seasonGames)
	return Prediction{Metric: metric, Wins: w, Losses: l}
}
