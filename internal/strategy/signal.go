package strategy

import (
	"errors"
	"fmt"

	"IDXScreener/internal/calculator"
	"IDXScreener/internal/model"
)

// Windows used by the screening rule.
const (
	ShortMAPeriod  = 5
	LongMAPeriod   = 20
	VolumeMAPeriod = 5
	// RSICeiling is the exclusive upper RSI bound for an uptrend signal.
	RSICeiling = 60.0
)

// ErrInsufficientHistory is returned when a series is too short for the rule's windows.
var ErrInsufficientHistory = errors.New("insufficient history")

// ScreeningInputs holds the values the four-condition rule looks at.
type ScreeningInputs struct {
	LatestClose  float64
	LatestOpen   float64
	MAShort      float64
	MALong       float64
	RSI          float64
	VolumeLatest float64
	VolumeAvg    float64
}

// ScreeningSignal applies the four-condition rule: a green candle, MA5 above
// MA20, RSI below 60 and above-average volume.
func ScreeningSignal(in ScreeningInputs) model.SignalLabel {
	if in.LatestClose > in.LatestOpen &&
		in.MAShort > in.MALong &&
		in.RSI < RSICeiling &&
		in.VolumeLatest > in.VolumeAvg {
		return model.SignalUptrend
	}
	return model.SignalNone
}

// SingleSignal applies the intraday rule: close above MA5, nothing else.
func SingleSignal(close, ma5 float64) model.SignalLabel {
	if close > ma5 {
		return model.SignalUptrend
	}
	return model.SignalNone
}

// ComputeScreening derives the rule inputs from a daily and an intraday series.
// The latest price comes from the intraday series; everything else is daily.
func ComputeScreening(daily, intraday *model.InstrumentSeries) (ScreeningInputs, error) {
	if daily.Empty() || intraday.Empty() {
		return ScreeningInputs{}, fmt.Errorf("empty series: %w", ErrInsufficientHistory)
	}
	closes := daily.Closes()
	volumes := daily.Volumes()

	maShort, err := calculator.CalculateSMA(closes, ShortMAPeriod)
	if err != nil {
		return ScreeningInputs{}, historyErr("MA5", err)
	}
	maLong, err := calculator.CalculateSMA(closes, LongMAPeriod)
	if err != nil {
		return ScreeningInputs{}, historyErr("MA20", err)
	}
	rsi, err := calculator.CalculateRSI(closes, calculator.DefaultRSIPeriod)
	if err != nil {
		return ScreeningInputs{}, historyErr("RSI", err)
	}
	volAvg, err := calculator.CalculateSMA(volumes, VolumeMAPeriod)
	if err != nil {
		return ScreeningInputs{}, historyErr("volume MA5", err)
	}

	latest := daily.Latest()
	return ScreeningInputs{
		LatestClose:  intraday.Latest().Close,
		LatestOpen:   latest.Open,
		MAShort:      maShort,
		MALong:       maLong,
		RSI:          rsi,
		VolumeLatest: latest.Volume,
		VolumeAvg:    volAvg,
	}, nil
}

// ComputeSingle returns the latest close and its MA5 from an intraday series.
func ComputeSingle(intraday *model.InstrumentSeries) (price, ma5 float64, err error) {
	if intraday.Empty() {
		return 0, 0, fmt.Errorf("empty series: %w", ErrInsufficientHistory)
	}
	ma5, err = calculator.CalculateSMA(intraday.Closes(), ShortMAPeriod)
	if err != nil {
		return 0, 0, historyErr("MA5", err)
	}
	return intraday.Latest().Close, ma5, nil
}

func historyErr(indicator string, err error) error {
	return fmt.Errorf("%s: %w: %w", indicator, ErrInsufficientHistory, err)
}
