package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Period is the look-back range requested from a market data provider.
type Period string

const (
	Period1D  Period = "1d"
	Period7D  Period = "7d"
	Period1Mo Period = "1mo"
	Period3Mo Period = "3mo"
)

// Days returns the calendar length of the period.
func (p Period) Days() int {
	switch p {
	case Period1D:
		return 1
	case Period7D:
		return 7
	case Period1Mo:
		return 31
	case Period3Mo:
		return 92
	default:
		return 0
	}
}

// Valid reports whether p is a known period.
func (p Period) Valid() bool { return p.Days() > 0 }

// Interval is the bar size requested from a market data provider.
type Interval string

const (
	Interval1Min Interval = "1m"
	Interval5Min Interval = "5m"
	Interval1Day Interval = "1d"
)

// Valid reports whether i is a known interval.
func (i Interval) Valid() bool {
	switch i {
	case Interval1Min, Interval5Min, Interval1Day:
		return true
	}
	return false
}

// InstrumentSeries holds the chronologically ordered bars of one symbol.
type InstrumentSeries struct {
	Symbol   string
	Period   Period
	Interval Interval
	Bars     []OHLCV
}

// Empty reports whether the series carries no bars.
func (s *InstrumentSeries) Empty() bool {
	return s == nil || len(s.Bars) == 0
}

// Latest returns the most recent bar. The series must not be empty.
func (s *InstrumentSeries) Latest() OHLCV {
	return s.Bars[len(s.Bars)-1]
}

// Closes returns the close column.
func (s *InstrumentSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Volumes returns the volume column.
func (s *InstrumentSeries) Volumes() []float64 {
	vols := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		vols[i] = b.Volume
	}
	return vols
}
