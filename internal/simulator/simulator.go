package simulator

import (
	"strings"

	"ngr-insights-go/internal/segment"
	"ngr-insights-go/internal/types"
)

// SimulateRemoval recomputes each client's NGR as if the feature's cost had never
// been granted (ngr + cost) and counts the clients still below zero.
// Records are only read; nothing is written back to the segment or dataset.
// Costs may be negative (corrections), in which case the adjusted count can exceed
// the baseline.
func SimulateRemoval(seg segment.Segment, feature string) (types.SimulationResult, error) {
	fs := seg.Features()
	if !fs.Has(feature) {
		return types.SimulationResult{}, &types.ConfigurationError{Dataset: fs.Name, Kind: "feature", Name: feature}
	}

	res := types.SimulationResult{
		Segment:       seg.Name,
		Feature:       feature,
		DisplayName:   DisplayName(feature, fs.DisplaySuffix),
		BaselineCount: seg.Len(),
	}
	seg.Each(func(r *types.ClientRecord) {
		if r.NGR+r.Costs[feature] < 0 {
			res.AdjustedCount++
		}
	})
	return res, nil
}

// DisplayName strips the cost suffix, e.g. "LoyaltyCost_EUR_total" -> "LoyaltyCost".
func DisplayName(feature, suffix string) string {
	if suffix == "" {
		return feature
	}
	return strings.TrimSuffix(feature, suffix)
}
