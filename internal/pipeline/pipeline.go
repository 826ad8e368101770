// internal/pipeline/pipeline.go
package pipeline

import (
	"ngr-insights-go/internal/aggregator"
	"ngr-insights-go/internal/logger"
	"ngr-insights-go/internal/reporter"
	"ngr-insights-go/internal/segment"
	"ngr-insights-go/internal/simulator"
	"ngr-insights-go/internal/types"
)

// Pipeline is one dataset's filter -> aggregate -> what-if chain.
// It holds only the loaded dataset, which is never written, so a Pipeline is
// safe for concurrent use and every call starts from the same source records.
type Pipeline struct {
	ds  *types.Dataset
	log *logger.Logger
}

func New(ds *types.Dataset, log *logger.Logger) *Pipeline {
	return &Pipeline{ds: ds, log: log}
}

// Name is the dataset name, e.g. "bonus".
func (p *Pipeline) Name() string { return p.ds.Features.Name }

func (p *Pipeline) Features() types.FeatureSet { return p.ds.Features }

// Overview is the static part of the analysis: the ranked cost table and the
// size of each segment.
type Overview struct {
	Report   types.ReportPayload `json:"report"`
	Segments []segment.Profile   `json:"segments"`
}

// Summary ranks every recognized feature over the negative NGR segment.
func (p *Pipeline) Summary() (Overview, error) {
	part := segment.PartitionDataset(p.ds)
	summary, err := aggregator.Summarize(part.NegativeNGR, p.ds.Features.Features)
	if err != nil {
		return Overview{}, err
	}
	ov := Overview{
		Report: reporter.Report(p.Name(), summary, p.ds.Features.DisplaySuffix),
		Segments: []segment.Profile{
			segment.Describe(part.NegativeNGR),
			segment.Describe(part.NegativeNGRPositiveGGR),
		},
	}
	p.log.Component("pipeline").WithField("dataset", p.Name()).
		WithField("negative_ngr", part.NegativeNGR.Len()).
		WithField("negative_ngr_positive_ggr", part.NegativeNGRPositiveGGR.Len()).
		Debug("summary computed")
	return ov, nil
}

// HandleSelection answers one (segment, feature) choice. The segment is cut
// fresh from the source dataset on every call.
func (p *Pipeline) HandleSelection(segmentName, feature string) (types.SimulationResult, error) {
	seg, err := segment.Select(p.ds, segmentName)
	if err != nil {
		return types.SimulationResult{}, err
	}
	return simulator.SimulateRemoval(seg, feature)
}

// SimulateAll runs HandleSelection for every recognized feature on one segment.
// step, if non-nil, is called after each feature.
func (p *Pipeline) SimulateAll(segmentName string, step func()) ([]types.SimulationResult, error) {
	out := make([]types.SimulationResult, 0, len(p.ds.Features.Features))
	for _, f := range p.ds.Features.Features {
		res, err := p.HandleSelection(segmentName, f)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
		if step != nil {
			step()
		}
	}
	return out, nil
}
