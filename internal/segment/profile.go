package segment

import (
	"github.com/montanaflynn/stats"
	"ngr-insights-go/internal/types"
)

// Profile describes the NGR/GGR distribution of a segment.
type Profile struct {
	Name      string  `json:"name"`
	Clients   int     `json:"clients"`
	TotalNGR  float64 `json:"total_ngr_eur"`
	MeanNGR   float64 `json:"mean_ngr_eur"`
	MedianNGR float64 `json:"median_ngr_eur"`
	MeanGGR   float64 `json:"mean_ggr_eur"`
}

// Describe computes the profile; an empty segment yields zeros.
func Describe(s Segment) Profile {
	p := Profile{Name: s.Name, Clients: s.Len()}
	if s.Len() == 0 {
		return p
	}
	ngr := make(stats.Float64Data, 0, s.Len())
	ggr := make(stats.Float64Data, 0, s.Len())
	s.Each(func(r *types.ClientRecord) {
		ngr = append(ngr, r.NGR)
		ggr = append(ggr, r.GGR)
	})
	p.TotalNGR, _ = ngr.Sum()
	p.MeanNGR, _ = ngr.Mean()
	p.MedianNGR, _ = ngr.Median()
	p.MeanGGR, _ = ggr.Mean()
	return p
}
