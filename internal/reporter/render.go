package reporter

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"ngr-insights-go/internal/types"
)

// RenderMarkdown renders a payload as a markdown table.
func RenderMarkdown(p types.ReportPayload) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("### %s cost distribution (negative NGR clients)\n\n", p.Dataset))
	sb.WriteString("| # | Feature | Total (EUR) | Share |\n")
	sb.WriteString("|---|---------|-------------|-------|\n")
	for i, r := range p.Rows {
		sb.WriteString(fmt.Sprintf("| %d | %s | %.2f | %.2f%% |\n", i+1, r.DisplayName, r.TotalEUR, r.Share*100))
	}
	sb.WriteString(fmt.Sprintf("\nGrand total: %.2f EUR\n", p.GrandTotalEUR))

	return sb.String()
}

// RenderSimulationsMarkdown renders a what-if sweep as a markdown table.
func RenderSimulationsMarkdown(dataset string, results []types.SimulationResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("### %s what-if removals\n\n", dataset))
	sb.WriteString("| Segment | Feature | Negative NGR | After removal | Recovered |\n")
	sb.WriteString("|---------|---------|--------------|---------------|-----------|\n")
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %d |\n",
			r.Segment, r.DisplayName, r.BaselineCount, r.AdjustedCount, r.Recovered()))
	}

	return sb.String()
}

// RenderCSV renders one or more payloads as a single CSV document: one header
// row, then every payload's rows keyed by the dataset column.
func RenderCSV(payloads ...types.ReportPayload) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	records := [][]string{{"dataset", "feature", "display_name", "total_eur", "share"}}
	for _, p := range payloads {
		for _, r := range p.Rows {
			records = append(records, []string{
				p.Dataset,
				r.Feature,
				r.DisplayName,
				strconv.FormatFloat(r.TotalEUR, 'f', 2, 64),
				strconv.FormatFloat(r.Share, 'f', 6, 64),
			})
		}
	}
	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}
	return sb.String(), nil
}
