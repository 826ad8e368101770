package reporter

import (
	"ngr-insights-go/internal/simulator"
	"ngr-insights-go/internal/types"
)

// Report attaches each feature's share of the grand total, keeping the summary order.
// Shares are all zero when the grand total is zero.
func Report(dataset string, summary types.RankedSummary, displaySuffix string) types.ReportPayload {
	payload := types.ReportPayload{
		Dataset: dataset,
		Rows:    make([]types.ReportRow, 0, len(summary)),
	}
	for _, ft := range summary {
		payload.GrandTotalEUR += ft.TotalEUR
	}
	for _, ft := range summary {
		share := 0.0
		if payload.GrandTotalEUR != 0 {
			share = ft.TotalEUR / payload.GrandTotalEUR
		}
		payload.Rows = append(payload.Rows, types.ReportRow{
			Feature:     ft.Feature,
			DisplayName: simulator.DisplayName(ft.Feature, displaySuffix),
			TotalEUR:    ft.TotalEUR,
			Share:       share,
		})
	}
	return payload
}
