package regress

import (
	"encoding/json"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	VeryGood        = "Very Good"
	Good            = "Good"
	Satisfactory    = "Satisfactory"
	NotSatisfactory = "Not Satisfactory"
	Undefined       = "Undefined"
)

// MetricNames is the report order.
var MetricNames = []string{"R2", "ME", "MAE", "RMSE", "NSE", "PBIAS", "RSR"}

type Metrics struct {
	R2    float64 `json:"r2"`
	ME    float64 `json:"me"`
	MAE   float64 `json:"mae"`
	RMSE  float64 `json:"rmse"`
	NSE   float64 `json:"nse"`
	PBIAS float64 `json:"pbias"`
	RSR   float64 `json:"rsr"`
}

// MarshalJSON writes NaN and ±Inf as null; encoding/json rejects them.
// A one-row test partition has σ=0, which makes RSR +Inf and NSE -Inf.
func (m Metrics) MarshalJSON() ([]byte, error) {
	out := make(map[string]*float64, len(MetricNames))
	for _, name := range MetricNames {
		out[strings.ToLower(name)] = finite(m.Get(name))
	}
	return json.Marshal(out)
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func (m Metrics) Get(name string) float64 {
	switch name {
	case "R2":
		return m.R2
	case "ME":
		return m.ME
	case "MAE":
		return m.MAE
	case "RMSE":
		return m.RMSE
	case "NSE":
		return m.NSE
	case "PBIAS":
		return m.PBIAS
	case "RSR":
		return m.RSR
	}
	return math.NaN()
}

func (m Metrics) Buckets() map[string]string {
	out := make(map[string]string, len(MetricNames))
	for _, name := range MetricNames {
		out[name] = Categorize(name, m.Get(name))
	}
	return out
}

// Evaluate scores predictions against observed values.
func Evaluate(yTrue, yPred []float64) Metrics {
	n := float64(len(yTrue))
	if n == 0 || len(yTrue) != len(yPred) {
		nan := math.NaN()
		return Metrics{R2: nan, ME: nan, MAE: nan, RMSE: nan, NSE: nan, PBIAS: nan, RSR: nan}
	}

	resid := make([]float64, len(yTrue)) // pred - true
	floats.SubTo(resid, yPred, yTrue)

	var absSum, sqSum float64
	for _, r := range resid {
		absSum += math.Abs(r)
		sqSum += r * r
	}
	meanTrue := stat.Mean(yTrue, nil)
	var ssTot float64
	for _, y := range yTrue {
		ssTot += (y - meanTrue) * (y - meanTrue)
	}

	rmse := math.Sqrt(sqSum / n)
	_, std := stat.PopMeanStdDev(yTrue, nil)

	return Metrics{
		R2:    stat.RSquaredFrom(yPred, yTrue, nil),
		ME:    floats.Sum(resid) / n,
		MAE:   absSum / n,
		RMSE:  rmse,
		NSE:   1 - div(sqSum, ssTot),
		PBIAS: 100 * div(-floats.Sum(resid), floats.Sum(yTrue)),
		RSR:   div(rmse, std),
	}
}

// 0/0 is NaN (undefined), x/0 is +Inf
func div(a, b float64) float64 {
	if b == 0 {
		if a == 0 {
			return math.NaN()
		}
		return math.Inf(1)
	}
	return a / b
}

type bucket struct {
	upper float64 // inclusive; the lower bound is the previous bucket's upper
	label string
}

// Thresholds per metric. Higher-is-better metrics list buckets from the top
// down; lower-is-better ones are judged on |value| from zero up.
var (
	higherIsBetter = map[string][]float64{
		// Very Good above [0], Good above [1], Satisfactory above [2]
		"R2":  {0.85, 0.75, 0.6},
		"NSE": {0.8, 0.7, 0.5},
	}
	lowerIsBetter = map[string][]bucket{
		"PBIAS": {{5, VeryGood}, {10, Good}, {15, Satisfactory}},
		"ME":    {{0.25, VeryGood}, {0.5, Good}, {1.0, Satisfactory}},
		"MAE":   {{0.5, VeryGood}, {0.75, Good}, {1.5, Satisfactory}},
		"RMSE":  {{0.75, VeryGood}, {1.0, Good}, {2.0, Satisfactory}},
		"RSR":   {{0.5, VeryGood}, {0.6, Good}, {0.7, Satisfactory}},
	}
)

// Categorize maps a fit statistic to its qualitative bucket. A value lands in
// a bucket when lower < value <= upper.
func Categorize(name string, value float64) string {
	if math.IsNaN(value) {
		return Undefined
	}
	if th, ok := higherIsBetter[name]; ok {
		switch {
		case math.IsInf(value, -1):
			// below every bucket, including the open-ended bottom one
			return Undefined
		case value > th[0]:
			return VeryGood
		case value > th[1]:
			return Good
		case value > th[2]:
			return Satisfactory
		default:
			return NotSatisfactory
		}
	}
	if bs, ok := lowerIsBetter[name]; ok {
		value = math.Abs(value)
		for _, b := range bs {
			if value <= b.upper {
				return b.label
			}
		}
		return NotSatisfactory
	}
	return Undefined
}
