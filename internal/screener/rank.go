package screener

import (
	"context"
	"sort"

	"IDXScreener/internal/model"
)

// TopN is the number of candidates kept after ranking.
const TopN = 5

// Rank orders results by estimated profit, highest first, keeping scan order
// for ties, and truncates to n entries. The input slice is not modified.
func Rank(results []model.SignalResult, n int) []model.SignalResult {
	ranked := append([]model.SignalResult(nil), results...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EstProfit > ranked[j].EstProfit
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Pipeline is anything that can produce a report for a run configuration.
type Pipeline interface {
	Run(ctx context.Context, cfg model.RunConfig) (*model.Report, error)
}
