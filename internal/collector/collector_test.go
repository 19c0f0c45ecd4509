package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IDXScreener/internal/model"
)

func TestMockFetcher_Generated(t *testing.T) {
	m := &MockFetcher{Price: 1000}
	s, err := m.Fetch(context.Background(), "BBCA.JK", model.Period3Mo, model.Interval1Day)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(s.Bars), 20)
	for i := 1; i < len(s.Bars); i++ {
		assert.True(t, s.Bars[i-1].Time.Before(s.Bars[i].Time))
	}
}

func TestMockFetcher_Overrides(t *testing.T) {
	boom := errors.New("boom")
	m := &MockFetcher{
		Series: map[string]map[model.Interval][]model.OHLCV{
			"ANTM.JK": {model.Interval1Day: {{Close: 1}}},
		},
		Errors: map[string]error{"TLKM.JK": boom},
	}
	s, err := m.Fetch(context.Background(), "ANTM.JK", model.Period7D, model.Interval1Day)
	require.NoError(t, err)
	assert.Len(t, s.Bars, 1)

	_, err = m.Fetch(context.Background(), "ANTM.JK", model.Period1D, model.Interval1Min)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = m.Fetch(context.Background(), "TLKM.JK", model.Period1D, model.Interval1Min)
	assert.ErrorIs(t, err, boom)
}
