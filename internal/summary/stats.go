// internal/summary/stats.go
// Package summary aggregates a trial history into a dataset/experiment
// report, rendered either as colored terminal output or a standalone HTML
// page.
package summary

import "math"

// RunningStat holds the values for online calculation of mean, variance,
// and stddev using Welford's algorithm.
type RunningStat struct {
	Count int64   `json:"-"`
	Mean  float64 `json:"mean"`
	M2    float64 `json:"-"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Update folds one value into the running statistic.
func (rs *RunningStat) Update(value float64) {
	rs.Count++
	if rs.Count == 1 {
		rs.Min = value
		rs.Max = value
	} else {
		if value < rs.Min {
			rs.Min = value
		}
		if value > rs.Max {
			rs.Max = value
		}
	}

	delta := value - rs.Mean
	rs.Mean += delta / float64(rs.Count)
	delta2 := value - rs.Mean
	rs.M2 += delta * delta2
}

// StdDev returns the sample standard deviation.
func (rs RunningStat) StdDev() float64 {
	if rs.Count < 2 {
		return 0
	}
	return math.Sqrt(rs.M2 / float64(rs.Count-1))
}
