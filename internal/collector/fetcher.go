package collector

import (
	"context"
	"errors"

	"IDXScreener/internal/model"
)

// ErrNoData is returned when a provider has no bars for the request.
var ErrNoData = errors.New("no data returned")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string, period model.Period, interval model.Interval) (*model.InstrumentSeries, error)
	Name() string
}
