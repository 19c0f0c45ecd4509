package screener

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"IDXScreener/internal/collector"
	"IDXScreener/internal/logger"
	"IDXScreener/internal/model"
	"IDXScreener/internal/position"
	"IDXScreener/mocks"
)

const smallCapital = 1_000_000

func bars(closes []float64, lastVolume float64) []model.OHLCV {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	out := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		out[i] = model.OHLCV{Time: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	out[len(out)-1].Volume = lastVolume
	return out
}

// uptrendDaily: flat, a jump outside the RSI window, then alternating +-1%.
// MA5 > MA20, RSI = 50, last volume above its 5-bar average.
func uptrendDaily(base float64) []model.OHLCV {
	closes := make([]float64, 25)
	for i := range closes {
		switch {
		case i < 10:
			closes[i] = base
		case i%2 == 0:
			closes[i] = base * 1.1
		default:
			closes[i] = base*1.1 + base*0.01
		}
	}
	return bars(closes, 2000)
}

func flatDaily(base float64) []model.OHLCV {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = base
	}
	return bars(closes, 2000)
}

func intraday(closes ...float64) []model.OHLCV {
	return bars(closes, 10)
}

type fixture struct {
	series map[string]map[model.Interval][]model.OHLCV
	errs   map[string]error
}

func newFixture() *fixture {
	return &fixture{series: map[string]map[model.Interval][]model.OHLCV{}, errs: map[string]error{}}
}

func (f *fixture) uptrend(sym string, base float64) {
	f.series[sym] = map[model.Interval][]model.OHLCV{
		model.Interval1Day: uptrendDaily(base),
		model.Interval5Min: intraday(base*1.1, base*1.12),
	}
}

func (f *fixture) flat(sym string, base float64) {
	f.series[sym] = map[model.Interval][]model.OHLCV{
		model.Interval1Day: flatDaily(base),
		model.Interval5Min: intraday(base, base*1.01),
	}
}

func (f *fixture) screener(opts Options, symbols ...string) *Screener {
	fetcher := &collector.MockFetcher{Series: f.series, Errors: f.errs}
	return New(fetcher, collector.StaticUniverseSource(symbols), opts, logger.Nop())
}

func screeningCfg() model.RunConfig {
	return model.RunConfig{Capital: smallCapital, Mode: model.ModeScreening}
}

func symbolsOf(results []model.SignalResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Symbol
	}
	return out
}

func TestRun_ScreeningRanksAndSkips(t *testing.T) {
	f := newFixture()
	f.uptrend("AAAA.JK", 20000)
	f.uptrend("BBBB.JK", 30000)
	f.flat("CCCC.JK", 25000)
	f.errs["DDDD.JK"] = errors.New("timeout")
	f.series["EEEE.JK"] = map[model.Interval][]model.OHLCV{
		model.Interval1Day: flatDaily(100)[:10],
		model.Interval5Min: intraday(100),
	}
	f.uptrend("FFFF.JK", 25000)
	f.series["GGGG.JK"] = map[model.Interval][]model.OHLCV{model.Interval1Day: uptrendDaily(100)}

	s := f.screener(DefaultOptions(), "AAAA.JK", "BBBB.JK", "CCCC.JK", "DDDD.JK", "EEEE.JK", "FFFF.JK", "GGGG.JK")
	report, err := s.Run(context.Background(), screeningCfg())
	require.NoError(t, err)

	assert.Equal(t, []string{"BBBB.JK", "FFFF.JK", "AAAA.JK"}, symbolsOf(report.Results))
	for i := 1; i < len(report.Results); i++ {
		assert.GreaterOrEqual(t, report.Results[i-1].EstProfit, report.Results[i].EstProfit)
	}

	top := report.Results[0]
	price := 30000 * 1.12
	sz := position.Size(price, smallCapital)
	assert.InDelta(t, price, top.Price, 1e-6)
	assert.Equal(t, 1, top.Lot)
	assert.Equal(t, sz.EstProfit, top.EstProfit)
	assert.Equal(t, sz.EstLoss, top.EstLoss)
	assert.Equal(t, model.SignalUptrend, top.Signal)
	require.True(t, top.RSI.IsSome())
	assert.InDelta(t, 50.0, top.RSI.Unwrap(), 1e-6)

	reasons := map[string]model.SkipReason{}
	for _, o := range report.Skipped {
		reasons[o.Symbol] = o.Skip
	}
	assert.Equal(t, map[string]model.SkipReason{
		"CCCC.JK": model.SkipNoSignal,
		"DDDD.JK": model.SkipDataUnavailable,
		"EEEE.JK": model.SkipInsufficientHistory,
		"GGGG.JK": model.SkipDataUnavailable,
	}, reasons)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, model.ModeScreening, report.Mode)

	// daily history is kept for ranked rows only
	require.Len(t, report.Series, 3)
	for _, sym := range symbolsOf(report.Results) {
		require.Contains(t, report.Series, sym)
		assert.Equal(t, model.Interval1Day, report.Series[sym].Interval)
		assert.Len(t, report.Series[sym].Bars, 25)
	}
	assert.NotContains(t, report.Series, "CCCC.JK")
}

func TestRun_TopFiveWithStableTies(t *testing.T) {
	f := newFixture()
	syms := []string{"T1.JK", "T2.JK", "T3.JK", "T4.JK", "T5.JK", "T6.JK", "T7.JK"}
	bases := []float64{20000, 40000, 20000, 30000, 20000, 10000, 20000}
	for i, sym := range syms {
		f.uptrend(sym, bases[i])
	}

	report, err := f.screener(DefaultOptions(), syms...).Run(context.Background(), screeningCfg())
	require.NoError(t, err)
	assert.Equal(t, []string{"T2.JK", "T4.JK", "T1.JK", "T3.JK", "T5.JK"}, symbolsOf(report.Results))
}

func TestRun_ParallelKeepsOrder(t *testing.T) {
	f := newFixture()
	var syms []string
	for i := 0; i < 12; i++ {
		sym := string(rune('A'+i)) + "X.JK"
		syms = append(syms, sym)
		f.uptrend(sym, 20000)
	}
	f.errs["CX.JK"] = errors.New("boom")

	opts := DefaultOptions()
	opts.Workers = 4
	parallel, err := f.screener(opts, syms...).Run(context.Background(), screeningCfg())
	require.NoError(t, err)
	sequential, err := f.screener(DefaultOptions(), syms...).Run(context.Background(), screeningCfg())
	require.NoError(t, err)

	assert.Equal(t, symbolsOf(sequential.Results), symbolsOf(parallel.Results))
	assert.Equal(t, []string{"AX.JK", "BX.JK", "DX.JK", "EX.JK", "FX.JK"}, symbolsOf(parallel.Results))
	require.Len(t, parallel.Skipped, 1)
	assert.Equal(t, "CX.JK", parallel.Skipped[0].Symbol)
}

func TestRun_NoCandidates(t *testing.T) {
	f := newFixture()
	f.flat("AAAA.JK", 1000)
	f.flat("BBBB.JK", 2000)

	report, err := f.screener(DefaultOptions(), "AAAA.JK", "BBBB.JK").Run(context.Background(), screeningCfg())
	require.ErrorIs(t, err, ErrNoCandidates)
	assert.NotErrorIs(t, err, ErrEmptyUniverse)
	require.NotNil(t, report)
	assert.True(t, report.Empty())
	assert.Len(t, report.Skipped, 2)
}

func TestRun_EmptyUniverse(t *testing.T) {
	opts := DefaultOptions()
	opts.Symbols = nil
	s := New(&collector.MockFetcher{}, nil, opts, nil)

	report, err := s.Run(context.Background(), model.RunConfig{Capital: smallCapital, Mode: model.ModeSingle})
	require.ErrorIs(t, err, ErrEmptyUniverse)
	assert.ErrorIs(t, err, ErrNoCandidates)
	assert.True(t, report.Empty())
}

func TestRun_UnknownMode(t *testing.T) {
	s := New(&collector.MockFetcher{}, nil, DefaultOptions(), nil)
	_, err := s.Run(context.Background(), model.RunConfig{Capital: smallCapital, Mode: "weekly"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCandidates)
}

func TestRun_UniverseFailureUsesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)

	src := mocks.NewMockUniverseSource(ctrl)
	src.EXPECT().ListSymbols(gomock.Any()).Return(nil, errors.New("no such host"))

	fetcher := mocks.NewMockFetcher(ctrl)
	for _, sym := range collector.DefaultSymbols {
		fetcher.EXPECT().
			Fetch(gomock.Any(), sym, model.Period3Mo, model.Interval1Day).
			Return(nil, collector.ErrNoData)
	}

	s := New(fetcher, &collector.Universe{Source: src}, DefaultOptions(), logger.Nop())
	report, err := s.Run(context.Background(), screeningCfg())
	require.ErrorIs(t, err, ErrNoCandidates)

	var scanned []string
	for _, o := range report.Skipped {
		scanned = append(scanned, o.Symbol)
		assert.Equal(t, model.SkipDataUnavailable, o.Skip)
	}
	assert.Equal(t, []string{"ANTM.JK", "BBCA.JK", "TLKM.JK", "ADRO.JK", "MDKA.JK"}, scanned)
}

func TestRun_EmptySeriesIsDataUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().
		Fetch(gomock.Any(), "ANTM.JK", model.Period1D, model.Interval1Min).
		Return(&model.InstrumentSeries{Symbol: "ANTM.JK"}, nil)

	opts := DefaultOptions()
	opts.Symbols = []string{"ANTM.JK"}
	report, err := New(fetcher, nil, opts, nil).Run(context.Background(), model.RunConfig{Capital: smallCapital, Mode: model.ModeSingle})
	require.ErrorIs(t, err, ErrNoCandidates)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, model.SkipDataUnavailable, report.Skipped[0].Skip)
	assert.ErrorIs(t, report.Skipped[0].Err, collector.ErrNoData)
}

func TestRun_SingleMode(t *testing.T) {
	f := newFixture()
	f.series["UP.JK"] = map[model.Interval][]model.OHLCV{model.Interval1Min: intraday(10, 10, 10, 10, 10, 11)}
	f.series["DOWN.JK"] = map[model.Interval][]model.OHLCV{model.Interval1Min: intraday(11, 11, 11, 11, 11, 10)}
	f.series["EQUAL.JK"] = map[model.Interval][]model.OHLCV{model.Interval1Min: intraday(10, 10, 10, 10, 10)}
	f.series["SHORT.JK"] = map[model.Interval][]model.OHLCV{model.Interval1Min: intraday(10, 11)}
	f.errs["ERR.JK"] = errors.New("boom")

	opts := DefaultOptions()
	opts.Symbols = []string{"DOWN.JK", "ERR.JK", "UP.JK", "SHORT.JK", "EQUAL.JK"}
	s := f.screener(opts)
	report, err := s.Run(context.Background(), model.RunConfig{Capital: 10_000_000, Mode: model.ModeSingle})
	require.NoError(t, err)

	// every evaluated symbol is reported in input order, no ranking
	require.Equal(t, []string{"DOWN.JK", "UP.JK", "EQUAL.JK"}, symbolsOf(report.Results))
	assert.Equal(t, model.SignalNone, report.Results[0].Signal)
	assert.Equal(t, model.SignalUptrend, report.Results[1].Signal)
	assert.Equal(t, model.SignalNone, report.Results[2].Signal)
	for _, r := range report.Results {
		assert.True(t, r.RSI.IsNone())
	}
	assert.Equal(t, position.Size(11, 10_000_000).Lot, report.Results[1].Lot)
	assert.Len(t, report.Skipped, 2)

	require.Len(t, report.Series, 3)
	assert.Equal(t, model.Interval1Min, report.Series["UP.JK"].Interval)
	assert.Equal(t, []float64{10, 10, 10, 10, 10, 11}, report.Series["UP.JK"].Closes())
}

func TestRank(t *testing.T) {
	in := []model.SignalResult{
		{Symbol: "A", EstProfit: 10},
		{Symbol: "B", EstProfit: 30},
		{Symbol: "C", EstProfit: 10},
		{Symbol: "D", EstProfit: 20},
	}
	out := Rank(in, 3)
	assert.Equal(t, []string{"B", "D", "A"}, symbolsOf(out))
	assert.Equal(t, "A", in[0].Symbol, "input must not be reordered")

	assert.Len(t, Rank(in, 10), 4)
	assert.Empty(t, Rank(nil, TopN))
}
