package types

// Column names shared by both source datasets.
const (
	NGRColumn = "CasinoNGR_EUR_no_jpot_total"
	GGRColumn = "CasinoGGR_EUR_no_jpot_total"
)

// Segment names.
const (
	SegmentNegativeNGR            = "negative_ngr"
	SegmentNegativeNGRPositiveGGR = "negative_ngr_positive_ggr"
)

// FeatureSet describes which columns one dataset carries and how they are displayed.
type FeatureSet struct {
	Name          string   `json:"name"`
	Features      []string `json:"features"`
	DisplaySuffix string   `json:"display_suffix"`
}

// Has reports whether name is one of the recognized cost features.
func (fs FeatureSet) Has(name string) bool {
	for _, f := range fs.Features {
		if f == name {
			return true
		}
	}
	return false
}

// BonusFeatureSet is the aggregate bonus dataset configuration.
func BonusFeatureSet() FeatureSet {
	return FeatureSet{
		Name: "bonus",
		Features: []string{
			"CasinoWageringCost_EUR_total",
			"FreespinCost_EUR_total",
			"HarmonyFreespin_EUR_total",
			"LuckyWheelCost_EUR_total",
			"CasinoCashback_EUR_total",
			"CasinoCorrection_EUR_total",
			"LoyaltyCost_EUR_total",
		},
		DisplaySuffix: "_EUR_total",
	}
}

// FreespinFeatureSet is the freespin-per-game dataset configuration.
func FreespinFeatureSet() FeatureSet {
	return FeatureSet{
		Name: "freespin",
		Features: []string{
			"EGT FreeSpin_Cost_EUR",
			"FreeSpin SayYo_Cost_EUR",
			"FreeSpin_0 Evoplay_Cost_EUR",
			"FreeSpin_0 Playtech_Cost_EUR",
			"FreeSpin_0 Popok_Cost_EUR",
			"FreeSpin_0 TopGame_Cost_EUR",
			"FreeSpin_Cost_EUR",
			"GoldenChipWin_Cost_EUR",
			"PatePlay Freespin_Cost_EUR",
		},
		DisplaySuffix: "_Cost_EUR",
	}
}

type ClientRecord struct {
	ClientID string             `json:"client_id"`
	NGR      float64            `json:"ngr"`
	GGR      float64            `json:"ggr"`
	Costs    map[string]float64 `json:"costs"`
}

// Dataset is loaded once and never mutated afterwards.
type Dataset struct {
	Features FeatureSet
	Records  []ClientRecord
}

// Len returns the number of client records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

type FeatureTotal struct {
	Feature  string  `json:"feature"`
	TotalEUR float64 `json:"total_eur"`
}

// RankedSummary is ordered by TotalEUR descending, ties in feature-set order.
type RankedSummary []FeatureTotal

type SimulationResult struct {
	Segment       string `json:"segment"`
	Feature       string `json:"feature"`
	DisplayName   string `json:"display_name"`
	BaselineCount int    `json:"baseline_count"`
	AdjustedCount int    `json:"adjusted_count"`
}

// Recovered is how many clients leave the negative NGR segment once the feature is removed.
func (r SimulationResult) Recovered() int {
	return r.BaselineCount - r.AdjustedCount
}

type ReportRow struct {
	Feature     string  `json:"feature"`
	DisplayName string  `json:"display_name"`
	TotalEUR    float64 `json:"total_eur"`
	Share       float64 `json:"share"`
}

// ReportPayload is what the rendering side receives for one dataset.
type ReportPayload struct {
	Dataset       string      `json:"dataset"`
	Rows          []ReportRow `json:"rows"`
	GrandTotalEUR float64     `json:"grand_total_eur"`
}
