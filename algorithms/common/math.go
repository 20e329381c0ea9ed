package common

import (
	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions used across algorithms using gonum for robustness

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// SumSquaredDeviations returns the sum of squared deviations of data from
// mean. The profile correlation normalizes by the square root of this value
// without dividing by N; that convention cancels between the two sides of
// the correlation quotient and must not be "fixed" into a true standard
// deviation.
func SumSquaredDeviations(data []float64, mean float64) float64 {
	sum := 0.0
	for _, v := range data {
		d := v - mean
		sum += d * d
	}
	return sum
}
