package position

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSize_ReferenceValues(t *testing.T) {
	s := Size(1000, 10_000_000)
	assert.Equal(t, 100, s.Lot)
	assert.InDelta(t, 1030.0, s.TakeProfit, 1e-9)
	assert.InDelta(t, 980.0, s.StopLoss, 1e-9)
	assert.Equal(t, int64(300000), s.EstProfit)
	assert.Equal(t, int64(200000), s.EstLoss)
}

func TestSize_MinimumOneLot(t *testing.T) {
	tests := []struct {
		price, capital float64
	}{
		{1_000_000, 1_000_000},
		{50_000, 1_000_000},
		{10, 0},
	}
	for _, tt := range tests {
		s := Size(tt.price, tt.capital)
		assert.Equal(t, 1, s.Lot, "price=%v capital=%v", tt.price, tt.capital)
	}
}

func TestSize_FloorsLots(t *testing.T) {
	// 10,000,000 / (3,300 * 100) = 30.3 -> 30 lots
	s := Size(3300, 10_000_000)
	assert.Equal(t, 30, s.Lot)
	assert.Equal(t, int64(297000), s.EstProfit)
}

func TestSize_TruncatesEstimates(t *testing.T) {
	// tp-price = 0.3705 per share, 1 lot -> 37.05 -> 37
	s := Size(12.35, 1_000)
	assert.Equal(t, 1, s.Lot)
	assert.Equal(t, int64(37), s.EstProfit)
	assert.Equal(t, int64(24), s.EstLoss)
}

func TestSize_HugeCapital(t *testing.T) {
	// 1e18 / (1000 * 100) = 1e13 lots, still exact
	s := Size(1000, 1e18)
	assert.Equal(t, 10_000_000_000_000, s.Lot)
	assert.InDelta(t, 3e16, float64(s.EstProfit), 1e3)
	assert.InDelta(t, 2e16, float64(s.EstLoss), 1e3)

	// beyond int range the lot count saturates instead of wrapping to 1
	s = Size(1000, 1e25)
	assert.Equal(t, MaxLots, s.Lot)
	assert.Equal(t, int64(math.MaxInt64), s.EstProfit)
	assert.Equal(t, int64(math.MaxInt64), s.EstLoss)

	s = Size(1000, math.Inf(1))
	assert.Equal(t, MaxLots, s.Lot)
}
