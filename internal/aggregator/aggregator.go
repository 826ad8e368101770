package aggregator

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"ngr-insights-go/internal/segment"
	"ngr-insights-go/internal/types"
)

// Summarize totals each feature over the segment and ranks the totals descending.
// Equal totals keep the order of features. Every feature must belong to the
// segment's dataset, otherwise a *types.ConfigurationError is returned before
// anything is summed. A feature listed twice is reported once, at its first
// position.
func Summarize(seg segment.Segment, features []string) (types.RankedSummary, error) {
	fs := seg.Features()
	seen := make(map[string]bool, len(features))
	unique := make([]string, 0, len(features))
	for _, f := range features {
		if !fs.Has(f) {
			return nil, &types.ConfigurationError{Dataset: fs.Name, Kind: "feature", Name: f}
		}
		if !seen[f] {
			seen[f] = true
			unique = append(unique, f)
		}
	}

	column := make([]float64, seg.Len())
	out := make(types.RankedSummary, len(unique))
	for i, f := range unique {
		for j := 0; j < seg.Len(); j++ {
			column[j] = seg.Record(j).Costs[f]
		}
		out[i] = types.FeatureTotal{Feature: f, TotalEUR: floats.Sum(column)}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalEUR > out[j].TotalEUR })
	return out, nil
}
