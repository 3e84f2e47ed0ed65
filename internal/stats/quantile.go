package stats

import (
	"errors"
	"slices"
)

var (
	// ErrQuantileCount is returned when fewer than one interval is requested.
	ErrQuantileCount = errors.New("n must be at least 1")
	// ErrTooFewPoints is returned when the sample has fewer than two values.
	ErrTooFewPoints = errors.New("must have at least two data points")
)

// Quantiles divides data into n continuous intervals of equal probability and
// returns the n-1 cut points, using the exclusive method: positions are
// scaled over len(data)+1 and interpolated linearly between neighbours.
func Quantiles(data []float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, ErrQuantileCount
	}
	ld := len(data)
	if ld < 2 {
		return nil, ErrTooFewPoints
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)

	m := ld + 1
	result := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		j := i * m / n
		if j < 1 {
			j = 1
		} else if j > ld-1 {
			j = ld - 1
		}
		// Exact integer remainder of i*m/n at position j.
		delta := i*m - j*n
		interpolated := (sorted[j-1]*float64(n-delta) + sorted[j]*float64(delta)) / float64(n)
		result = append(result, interpolated)
	}
	return result, nil
}

// Median returns the middle value of data, or the mean of the two middle
// values when the length is even. It returns 0 for empty input.
func Median(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// fiveNumberSummary returns min, q1, median, q3 and max of data. A single
// value is its own summary.
func fiveNumberSummary(data []float64) ([5]float64, error) {
	var out [5]float64
	switch len(data) {
	case 0:
		return out, ErrNoData
	case 1:
		for i := range out {
			out[i] = data[0]
		}
		return out, nil
	}
	q, err := Quantiles(data, 4)
	if err != nil {
		return out, err
	}
	out[0] = slices.Min(data)
	out[1], out[2], out[3] = q[0], q[1], q[2]
	out[4] = slices.Max(data)
	return out, nil
}
