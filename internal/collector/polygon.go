package collector

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"IDXScreener/internal/model"
)

// PolygonFetcher implements Fetcher using the Polygon.io aggregates endpoint.
type PolygonFetcher struct {
	client *polygon.Client
	now    func() time.Time
}

// NewPolygonFetcher creates a Polygon.io backed fetcher.
func NewPolygonFetcher(apiKey string) (*PolygonFetcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	return &PolygonFetcher{client: polygon.New(apiKey), now: time.Now}, nil
}

func (f *PolygonFetcher) Name() string { return "polygon" }

func polygonTimespan(interval model.Interval) (multiplier int, timespan models.Timespan, err error) {
	switch interval {
	case model.Interval1Min:
		return 1, models.Minute, nil
	case model.Interval5Min:
		return 5, models.Minute, nil
	case model.Interval1Day:
		return 1, models.Day, nil
	}
	return 0, "", fmt.Errorf("polygon: unsupported interval %q", interval)
}

func (f *PolygonFetcher) Fetch(ctx context.Context, symbol string, period model.Period, interval model.Interval) (*model.InstrumentSeries, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("polygon: unsupported period %q", period)
	}
	multiplier, timespan, err := polygonTimespan(interval)
	if err != nil {
		return nil, err
	}

	end := f.now()
	start := end.AddDate(0, 0, -period.Days())

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(50000)

	iter := f.client.ListAggs(ctx, params)
	var bars []model.OHLCV
	for iter.Next() {
		agg := iter.Item()
		bars = append(bars, model.OHLCV{
			Time:   time.Time(agg.Timestamp),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("polygon aggregates %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("polygon %s: %w", symbol, ErrNoData)
	}
	return &model.InstrumentSeries{Symbol: symbol, Period: period, Interval: interval, Bars: bars}, nil
}
