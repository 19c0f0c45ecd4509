package screener

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"IDXScreener/internal/collector"
	"IDXScreener/internal/logger"
	"IDXScreener/internal/model"
	"IDXScreener/internal/position"
	"IDXScreener/internal/strategy"
)

var (
	// ErrNoCandidates means the run finished but no symbol qualified.
	ErrNoCandidates = errors.New("no candidates today")
	// ErrEmptyUniverse means there was nothing to scan.
	ErrEmptyUniverse = fmt.Errorf("%w: symbol universe is empty", ErrNoCandidates)
)

// Options tunes the data requests and execution of a run.
type Options struct {
	// Symbols is the fixed list evaluated in single mode.
	Symbols          []string
	DailyPeriod      model.Period
	IntradayPeriod   model.Period
	IntradayInterval model.Interval
	// Workers above one fetches symbols concurrently; output order is unchanged.
	Workers  int
	Progress bool
}

// DefaultOptions returns the settings used by the reference deployment.
func DefaultOptions() Options {
	return Options{
		Symbols:          append([]string(nil), collector.DefaultSymbols...),
		DailyPeriod:      model.Period3Mo,
		IntradayPeriod:   model.Period1D,
		IntradayInterval: model.Interval5Min,
		Workers:          1,
	}
}

// Screener runs the indicator engine and position sizer across a set of symbols.
type Screener struct {
	Fetcher  collector.Fetcher
	Universe collector.UniverseSource
	Options  Options
	Logger   *logger.Logger
	now      func() time.Time
}

// New creates a Screener.
func New(fetcher collector.Fetcher, universe collector.UniverseSource, opts Options, log *logger.Logger) *Screener {
	return &Screener{
		Fetcher:  fetcher,
		Universe: universe,
		Options:  opts,
		Logger:   logger.OrNop(log),
		now:      time.Now,
	}
}

// Run executes one pass. The report is always returned; the error is
// ErrNoCandidates (or ErrEmptyUniverse) when it holds no rows.
func (s *Screener) Run(ctx context.Context, cfg model.RunConfig) (*model.Report, error) {
	log := logger.OrNop(s.Logger)
	now := s.now
	if now == nil {
		now = time.Now
	}
	report := &model.Report{
		RunID:       uuid.NewString(),
		Mode:        cfg.Mode,
		GeneratedAt: now(),
		Capital:     cfg.Capital,
	}

	symbols, err := s.symbols(ctx, cfg.Mode)
	if err != nil {
		return report, err
	}
	if len(symbols) == 0 {
		return report, ErrEmptyUniverse
	}
	log.Info("screening started",
		zap.String("run_id", report.RunID),
		zap.String("mode", string(cfg.Mode)),
		zap.Int("symbols", len(symbols)))

	outcomes := s.evaluateAll(ctx, cfg, symbols)

	var results []model.SignalResult
	series := make(map[string]*model.InstrumentSeries)
	for _, o := range outcomes {
		if !o.OK() {
			report.Skipped = append(report.Skipped, o)
			if o.Skip != model.SkipNoSignal {
				log.Debug("symbol skipped", zap.String("symbol", o.Symbol),
					zap.String("reason", string(o.Skip)), zap.Error(o.Err))
			}
			continue
		}
		results = append(results, *o.Result)
		if o.Series != nil {
			series[o.Symbol] = o.Series
		}
	}

	if cfg.Mode == model.ModeScreening {
		results = Rank(results, TopN)
	}
	report.Results = results
	report.Series = make(map[string]*model.InstrumentSeries, len(results))
	for _, r := range results {
		if hist, ok := series[r.Symbol]; ok {
			report.Series[r.Symbol] = hist
		}
	}

	log.Info("screening finished",
		zap.String("run_id", report.RunID),
		zap.Int("results", len(report.Results)),
		zap.Int("skipped", len(report.Skipped)))

	if report.Empty() {
		return report, ErrNoCandidates
	}
	return report, nil
}

func (s *Screener) symbols(ctx context.Context, mode model.Mode) ([]string, error) {
	switch mode {
	case model.ModeSingle:
		return append([]string(nil), s.Options.Symbols...), nil
	case model.ModeScreening:
		if s.Universe == nil {
			return append([]string(nil), collector.DefaultSymbols...), nil
		}
		return s.Universe.ListSymbols(ctx)
	}
	return nil, fmt.Errorf("unknown mode %q", mode)
}

// evaluateAll returns one outcome per symbol, in scan order.
func (s *Screener) evaluateAll(ctx context.Context, cfg model.RunConfig, symbols []string) []model.Outcome {
	outcomes := make([]model.Outcome, len(symbols))

	var bar *progressbar.ProgressBar
	if s.Options.Progress {
		bar = progressbar.NewOptions(len(symbols),
			progressbar.OptionSetDescription("Screening"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish())
		defer bar.Finish()
	}

	if s.Options.Workers <= 1 {
		for i, sym := range symbols {
			outcomes[i] = s.Evaluate(ctx, cfg, sym)
			if bar != nil {
				_ = bar.Add(1)
			}
		}
		return outcomes
	}

	// Tasks never return an error so one failing symbol cannot cancel the others.
	var g errgroup.Group
	g.SetLimit(s.Options.Workers)
	for i, sym := range symbols {
		i, sym := i, sym
		g.Go(func() error {
			outcomes[i] = s.Evaluate(ctx, cfg, sym)
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// Evaluate produces the outcome for one symbol under the configured mode.
func (s *Screener) Evaluate(ctx context.Context, cfg model.RunConfig, symbol string) model.Outcome {
	if cfg.Mode == model.ModeSingle {
		return s.evaluateSingle(ctx, cfg, symbol)
	}
	return s.evaluateScreening(ctx, cfg, symbol)
}

func (s *Screener) evaluateScreening(ctx context.Context, cfg model.RunConfig, symbol string) model.Outcome {
	daily, err := s.fetch(ctx, symbol, s.Options.DailyPeriod, model.Interval1Day)
	if err != nil {
		return skip(symbol, model.SkipDataUnavailable, err)
	}
	intraday, err := s.fetch(ctx, symbol, s.Options.IntradayPeriod, s.Options.IntradayInterval)
	if err != nil {
		return skip(symbol, model.SkipDataUnavailable, err)
	}

	in, err := strategy.ComputeScreening(daily, intraday)
	if err != nil {
		return skip(symbol, model.SkipInsufficientHistory, err)
	}
	if !validPrice(in.LatestClose) {
		return skip(symbol, model.SkipDataUnavailable, fmt.Errorf("latest price %v: %w", in.LatestClose, collector.ErrNoData))
	}
	label := strategy.ScreeningSignal(in)
	if label != model.SignalUptrend {
		return skip(symbol, model.SkipNoSignal, nil)
	}
	return model.Outcome{
		Symbol: symbol,
		Result: newResult(symbol, in.LatestClose, cfg.Capital, optional.Some(in.RSI), label),
		Series: daily,
	}
}

func (s *Screener) evaluateSingle(ctx context.Context, cfg model.RunConfig, symbol string) model.Outcome {
	intraday, err := s.fetch(ctx, symbol, model.Period1D, model.Interval1Min)
	if err != nil {
		return skip(symbol, model.SkipDataUnavailable, err)
	}
	price, ma5, err := strategy.ComputeSingle(intraday)
	if err != nil {
		return skip(symbol, model.SkipInsufficientHistory, err)
	}
	if !validPrice(price) {
		return skip(symbol, model.SkipDataUnavailable, fmt.Errorf("latest price %v: %w", price, collector.ErrNoData))
	}
	label := strategy.SingleSignal(price, ma5)
	return model.Outcome{
		Symbol: symbol,
		Result: newResult(symbol, price, cfg.Capital, optional.None[float64](), label),
		Series: intraday,
	}
}

// fetch treats provider errors and empty series alike.
func (s *Screener) fetch(ctx context.Context, symbol string, period model.Period, interval model.Interval) (*model.InstrumentSeries, error) {
	series, err := s.Fetcher.Fetch(ctx, symbol, period, interval)
	if err != nil {
		return nil, err
	}
	if series.Empty() {
		return nil, fmt.Errorf("%s %s/%s: %w", symbol, period, interval, collector.ErrNoData)
	}
	return series, nil
}

func newResult(symbol string, price, capital float64, rsi optional.Option[float64], label model.SignalLabel) *model.SignalResult {
	sz := position.Size(price, capital)
	return &model.SignalResult{
		Symbol:     symbol,
		Price:      price,
		Lot:        sz.Lot,
		TakeProfit: sz.TakeProfit,
		StopLoss:   sz.StopLoss,
		EstProfit:  sz.EstProfit,
		EstLoss:    sz.EstLoss,
		RSI:        rsi,
		Signal:     label,
	}
}

func validPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0)
}

func skip(symbol string, reason model.SkipReason, err error) model.Outcome {
	return model.Outcome{Symbol: symbol, Skip: reason, Err: err}
}
