// Package stats implements the numeric tools behind the Measure, Analyze
// and Control phases: descriptive statistics, process capability, Pareto
// analysis and individuals control charts.
package stats

import (
	"errors"
	"math"
)

// ErrNoData is returned when a computation receives an empty sample.
var ErrNoData = errors.New("stats: no data points")

// Summary holds descriptive statistics for a sample.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Describe computes count, mean, sample standard deviation and range.
func Describe(data []float64) (Summary, error) {
	if len(data) == 0 {
		return Summary{}, ErrNoData
	}

	s := Summary{Count: len(data), Min: data[0], Max: data[0]}
	var sum float64
	for _, v := range data {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = sum / float64(len(data))

	// Sample standard deviation (n-1), matching the spreadsheet convention
	// practitioners expect. A single point has zero spread.
	if len(data) > 1 {
		var ss float64
		for _, v := range data {
			d := v - s.Mean
			ss += d * d
		}
		s.StdDev = math.Sqrt(ss / float64(len(data)-1))
	}
	return s, nil
}
