package calculator

import (
	"errors"
	"fmt"
	"math"
)

// DefaultRSIPeriod is the look-back used by the screening rule.
const DefaultRSIPeriod = 14

// CalculateRSI computes the RSI over the last period price changes, averaging
// gains and losses with a simple mean. Requires at least period+1 closes.
//
// When the average loss is exactly zero the RSI is 100, even if the average
// gain is zero as well.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 0, fmt.Errorf("RSI(%d) over %d closes: %w", period, len(closes), ErrInsufficientData)
	}

	var avgGain, avgLoss float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	if math.IsNaN(avgGain) || math.IsNaN(avgLoss) {
		return 0, fmt.Errorf("RSI(%d): %w", period, ErrInvalidValue)
	}
	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	rsi := 100.0 - 100.0/(1.0+rs)
	if math.IsNaN(rsi) || math.IsInf(rsi, 0) {
		return 0, fmt.Errorf("RSI(%d): %w", period, ErrInvalidValue)
	}
	return rsi, nil
}
