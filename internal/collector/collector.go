package collector

import (
	"context"
	"fmt"
	"time"

	"IDXScreener/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	// Series overrides generated data per symbol and interval.
	Series map[string]map[model.Interval][]model.OHLCV
	// Errors makes Fetch fail for the listed symbols.
	Errors map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Fetch(_ context.Context, symbol string, period model.Period, interval model.Interval) (*model.InstrumentSeries, error) {
	if err, ok := m.Errors[symbol]; ok {
		return nil, err
	}
	s := &model.InstrumentSeries{Symbol: symbol, Period: period, Interval: interval}
	if bySymbol, ok := m.Series[symbol]; ok {
		bars, ok := bySymbol[interval]
		if !ok || len(bars) == 0 {
			return nil, fmt.Errorf("mock %s %s: %w", symbol, interval, ErrNoData)
		}
		s.Bars = bars
		return s, nil
	}
	s.Bars = generateMockBars(m.Price, barCount(period, interval), interval)
	return s, nil
}

func barCount(period model.Period, interval model.Interval) int {
	switch interval {
	case model.Interval1Min:
		return 60 * 6
	case model.Interval5Min:
		return 12 * 6
	default:
		// roughly five sessions a week
		return period.Days() * 5 / 7
	}
}

func generateMockBars(basePrice float64, count int, interval model.Interval) []model.OHLCV {
	step := 24 * time.Hour
	switch interval {
	case model.Interval1Min:
		step = time.Minute
	case model.Interval5Min:
		step = 5 * time.Minute
	}
	now := time.Now()
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   now.Add(-time.Duration(count-i) * step),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
