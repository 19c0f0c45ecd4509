// Package report renders screening results as a terminal table, a spreadsheet and a PDF.
package report

import (
	"fmt"
	"strconv"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"

	"IDXScreener/internal/model"
)

// NoCandidatesText replaces the table when a run has no rows.
const NoCandidatesText = "No candidates today"

// Column headers. RSI only appears in screening mode.
const (
	ColSymbol    = "Symbol"
	ColPrice     = "Price"
	ColLot       = "Lot"
	ColTP        = "TP"
	ColSL        = "SL"
	ColEstProfit = "Est. Profit"
	ColEstLoss   = "Est. Loss"
	ColRSI       = "RSI"
	ColSignal    = "Signal"
)

// Columns returns the table header for a mode.
func Columns(mode model.Mode) []string {
	cols := []string{ColSymbol, ColPrice, ColLot, ColTP, ColSL, ColEstProfit, ColEstLoss}
	if mode == model.ModeScreening {
		cols = append(cols, ColRSI)
	}
	return append(cols, ColSignal)
}

// Rows returns one formatted row per result, aligned with Columns(rep.Mode).
func Rows(rep *model.Report) [][]string {
	if rep.Empty() {
		return nil
	}
	rows := make([][]string, 0, len(rep.Results))
	for _, r := range rep.Results {
		row := []string{
			r.Symbol,
			FormatPrice(r.Price),
			strconv.Itoa(r.Lot),
			FormatPrice(r.TakeProfit),
			FormatPrice(r.StopLoss),
			FormatAmount(r.EstProfit),
			FormatAmount(r.EstLoss),
		}
		if rep.Mode == model.ModeScreening {
			row = append(row, FormatRSI(r.RSI))
		}
		rows = append(rows, append(row, SignalText(r.Signal)))
	}
	return rows
}

// FormatPrice rounds to two decimals.
func FormatPrice(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// RoundPrice is FormatPrice as a number, for spreadsheet cells.
func RoundPrice(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func FormatAmount(v int64) string {
	return strconv.FormatInt(v, 10)
}

// FormatRSI renders "-" when the run mode has no RSI.
func FormatRSI(rsi optional.Option[float64]) string {
	if rsi.IsNone() {
		return "-"
	}
	return decimal.NewFromFloat(rsi.Unwrap()).StringFixed(2)
}

// SignalText is the human label for a signal.
func SignalText(label model.SignalLabel) string {
	switch label {
	case model.SignalUptrend:
		return "Uptrend confirmed"
	case model.SignalNone, "":
		return "-"
	}
	return string(label)
}

// Title is the heading shared by every rendering.
func Title(rep *model.Report) string {
	return fmt.Sprintf("Daily Stock Analysis (%s) %s", rep.Mode, rep.GeneratedAt.Format("2006-01-02"))
}
