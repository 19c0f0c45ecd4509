package position

import (
	"math"

	"IDXScreener/internal/model"
)

const (
	// LotSize is the number of shares in one lot.
	LotSize = 100
	// TakeProfitRatio is the exit price multiplier above entry.
	TakeProfitRatio = 1.03
	// StopLossRatio is the exit price multiplier below entry.
	StopLossRatio = 0.98
	// MaxLots is the largest lot count Size returns; larger positions saturate.
	MaxLots = math.MaxInt / LotSize
)

// Size computes lot count, exit prices and estimated profit/loss for a
// position opened at price with the given capital.
//
// The lot count never drops below one, even when capital cannot cover a
// single lot. Lots saturate at MaxLots and estimates at math.MaxInt64.
func Size(price, capital float64) model.Sizing {
	lots := math.Floor(capital / (price * LotSize))
	var lot int
	switch {
	case !(lots >= 1): // also NaN
		lot = 1
	case lots >= MaxLots:
		lot = MaxLots
	default:
		lot = int(lots)
	}
	// explicit conversions keep the products rounded before subtraction
	tp := float64(price * TakeProfitRatio)
	sl := float64(price * StopLossRatio)
	shares := float64(lot) * LotSize
	return model.Sizing{
		Lot:        lot,
		TakeProfit: tp,
		StopLoss:   sl,
		EstProfit:  truncate((tp - price) * shares),
		EstLoss:    truncate((price - sl) * shares),
	}
}

// truncate converts toward zero, saturating outside the int64 range.
func truncate(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v)
}
