package stats

import (
	"math"
	"sort"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Sum returns the sum of all values
func Sum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// Variance calculates the sample variance
func Variance(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := Mean(values)
	var sumSquaredDiff float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}

	return sumSquaredDiff / float64(len(values)-1)
}

// StdDev calculates the sample standard deviation
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// PopulationVariance calculates the population variance (divides by n).
// Rating normalization uses the population form so that a user's own ratings
// are treated as the full population, not a sample.
func PopulationVariance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	mean := Mean(values)
	var sumSquaredDiff float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}

	return sumSquaredDiff / float64(len(values))
}

// PopulationStdDev calculates the population standard deviation
func PopulationStdDev(values []float64) float64 {
	return math.Sqrt(PopulationVariance(values))
}

// Min returns the minimum value
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// ZScore calculates the z-score for each value against the slice's own
// population mean and standard deviation. All-identical input yields zeros.
func ZScore(values []float64) []float64 {
	mean := Mean(values)
	stddev := PopulationStdDev(values)

	result := make([]float64, len(values))
	if stddev == 0 {
		return result
	}

	for i, v := range values {
		result[i] = (v - mean) / stddev
	}

	return result
}

// Gini calculates the discrete Gini coefficient of a distribution using the
// sorted-rank formula:
//
//	gini = (2 * Σ(rank_i * value_i)) / (n * total) - (n+1)/n
//
// The result is clamped to [-1, 1]. Fewer than two values, or a zero total,
// yield 0 (no inequality is measurable).
func Gini(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	total := Sum(sorted)
	if total == 0 {
		return 0
	}

	var weighted float64
	for i, v := range sorted {
		weighted += float64(i+1) * v
	}

	gini := (2*weighted)/(float64(n)*total) - float64(n+1)/float64(n)
	return Clamp(gini, -1, 1)
}

// Clamp restricts v to the range [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
