package model

import (
	"fmt"

	"github.com/moznion/go-optional"
)

// SignalLabel is the categorical outcome of the signal rule.
type SignalLabel string

const (
	SignalUptrend SignalLabel = "uptrend-confirmed"
	SignalNone    SignalLabel = "none"
)

// Mode selects which signal rule and symbol source a run uses.
type Mode string

const (
	// ModeSingle evaluates a fixed symbol list on one day of 1-minute bars with the close > MA5 rule.
	ModeSingle Mode = "single"
	// ModeScreening scans the universe with the four-condition rule and ranks the top candidates.
	ModeScreening Mode = "screening"
)

// ParseMode converts a user supplied string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSingle, ModeScreening:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeSingle, ModeScreening)
}

// Sizing is the output of the position sizer.
type Sizing struct {
	Lot        int
	TakeProfit float64
	StopLoss   float64
	EstProfit  int64
	EstLoss    int64
}

// SignalResult is one row of the report.
type SignalResult struct {
	Symbol     string                   `json:"symbol"`
	Price      float64                  `json:"price"`
	Lot        int                      `json:"lot"`
	TakeProfit float64                  `json:"take_profit"`
	StopLoss   float64                  `json:"stop_loss"`
	EstProfit  int64                    `json:"est_profit"`
	EstLoss    int64                    `json:"est_loss"`
	RSI        optional.Option[float64] `json:"rsi"` // screening mode only
	Signal     SignalLabel              `json:"signal"`
}

// SkipReason explains why a symbol produced no report row.
type SkipReason string

const (
	SkipNone                SkipReason = ""
	SkipDataUnavailable     SkipReason = "data-unavailable"
	SkipInsufficientHistory SkipReason = "insufficient-history"
	SkipNoSignal            SkipReason = "no-signal"
)

// Outcome is the per-symbol result of a pipeline pass: either Result is set or Skip is.
type Outcome struct {
	Symbol string
	Result *SignalResult
	// Series is the price history the signal was computed on.
	Series *InstrumentSeries
	Skip   SkipReason
	Err    error
}

// OK reports whether the outcome carries a result.
func (o Outcome) OK() bool { return o.Result != nil }
