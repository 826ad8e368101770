package actionable

import (
	"fmt"

	"ngr-insights-go/internal/types"
)

// recoveryThreshold is the share of negative-NGR clients a single cost must
// account for before it is flagged.
const recoveryThreshold = 0.35

type ActionCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

// Generate picks the removal that recovers the most clients in a sweep.
func Generate(results []types.SimulationResult) ActionCard {
	var best types.SimulationResult
	found := false
	for _, r := range results {
		if r.BaselineCount == 0 {
			continue
		}
		if !found || r.Recovered() > best.Recovered() {
			best = r
			found = true
		}
	}
	if !found || best.Recovered() <= 0 {
		return ActionCard{
			Insight: "No single cost explains the negative NGR population",
			Action:  "Monitor and collect more data",
			Impact:  "Low immediate intervention",
		}
	}

	rate := float64(best.Recovered()) / float64(best.BaselineCount)
	insight := fmt.Sprintf("Removing %s lifts %d of %d clients (%.0f%%) out of negative NGR in %s",
		best.DisplayName, best.Recovered(), best.BaselineCount, rate*100, best.Segment)
	if rate >= recoveryThreshold {
		return ActionCard{
			Insight: insight,
			Action:  fmt.Sprintf("Review %s eligibility and caps for loss-making clients", best.DisplayName),
			Impact:  "High: this cost alone drives most of the NGR erosion",
		}
	}
	return ActionCard{
		Insight: insight,
		Action:  fmt.Sprintf("Track %s spend per client alongside NGR", best.DisplayName),
		Impact:  "Moderate: erosion is spread across several costs",
	}
}
