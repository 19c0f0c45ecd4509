package calculator

import (
	"errors"
	"fmt"
	"math"
)

// ErrInsufficientData is returned when a series is shorter than the indicator window.
var ErrInsufficientData = errors.New("not enough data")

// ErrInvalidValue is returned when an indicator evaluates to NaN or Inf.
var ErrInvalidValue = errors.New("indicator value is not a finite number")

// CalculateSMA computes the simple moving average of the last period values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, fmt.Errorf("SMA(%d) over %d values: %w", period, len(values), ErrInsufficientData)
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	avg := sum / float64(period)
	if math.IsNaN(avg) || math.IsInf(avg, 0) {
		return 0, fmt.Errorf("SMA(%d): %w", period, ErrInvalidValue)
	}
	return avg, nil
}

// RollingSMA returns the moving average at every index. The first period-1
// entries, and any window holding a non-finite value, are NaN.
func RollingSMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		if period <= 0 || i+1 < period {
			out[i] = math.NaN()
			continue
		}
		sum := 0.0
		for _, v := range values[i+1-period : i+1] {
			sum += v
		}
		avg := sum / float64(period)
		if math.IsInf(avg, 0) {
			avg = math.NaN()
		}
		out[i] = avg
	}
	return out
}
