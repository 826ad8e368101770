package segment

import (
	"strings"

	"ngr-insights-go/internal/types"
)

// Segment is a read-only view over a Dataset: the positions of the records that matched.
type Segment struct {
	Name    string
	dataset *types.Dataset
	rows    []int
}

// Len is the number of clients in the segment.
func (s Segment) Len() int { return len(s.rows) }

// Dataset returns the dataset the segment was cut from.
func (s Segment) Dataset() *types.Dataset { return s.dataset }

// Features is the recognized feature set of the originating dataset.
func (s Segment) Features() types.FeatureSet {
	if s.dataset == nil {
		return types.FeatureSet{}
	}
	return s.dataset.Features
}

// Record returns the i-th record of the segment in dataset order.
func (s Segment) Record(i int) *types.ClientRecord {
	return &s.dataset.Records[s.rows[i]]
}

// Each calls fn for every record in dataset order.
func (s Segment) Each(fn func(r *types.ClientRecord)) {
	for _, i := range s.rows {
		fn(&s.dataset.Records[i])
	}
}

type Partition struct {
	NegativeNGR            Segment
	NegativeNGRPositiveGGR Segment
}

// PartitionDataset splits ds in one pass. The GGR segment is always a subset of
// the NGR one and both keep the dataset order.
func PartitionDataset(ds *types.Dataset) Partition {
	p := Partition{
		NegativeNGR:            Segment{Name: types.SegmentNegativeNGR, dataset: ds},
		NegativeNGRPositiveGGR: Segment{Name: types.SegmentNegativeNGRPositiveGGR, dataset: ds},
	}
	if ds == nil {
		return p
	}
	for i := range ds.Records {
		r := &ds.Records[i]
		if r.NGR >= 0 {
			continue
		}
		p.NegativeNGR.rows = append(p.NegativeNGR.rows, i)
		if r.GGR >= 0 {
			p.NegativeNGRPositiveGGR.rows = append(p.NegativeNGRPositiveGGR.rows, i)
		}
	}
	return p
}

// Select derives a single named segment from ds. Dashboard labels are accepted
// alongside the canonical names.
func Select(ds *types.Dataset, name string) (Segment, error) {
	canonical, ok := Canonical(name)
	if !ok {
		var dsName string
		if ds != nil {
			dsName = ds.Features.Name
		}
		return Segment{}, &types.ConfigurationError{Dataset: dsName, Kind: "segment", Name: name}
	}
	p := PartitionDataset(ds)
	if canonical == types.SegmentNegativeNGR {
		return p.NegativeNGR, nil
	}
	return p.NegativeNGRPositiveGGR, nil
}

// Canonical maps a segment name or label to its canonical name.
func Canonical(name string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case types.SegmentNegativeNGR, "negative ngr clients", "negative-ngr":
		return types.SegmentNegativeNGR, true
	case types.SegmentNegativeNGRPositiveGGR, "negative ngr with positive ggr clients", "negative-ngr-positive-ggr":
		return types.SegmentNegativeNGRPositiveGGR, true
	}
	return "", false
}

// Names lists the canonical segment names.
func Names() []string {
	return []string{types.SegmentNegativeNGR, types.SegmentNegativeNGRPositiveGGR}
}
