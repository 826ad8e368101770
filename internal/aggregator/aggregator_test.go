package aggregator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ngr-insights-go/internal/segment"
	"ngr-insights-go/internal/types"
)

func abcDataset(rows ...[4]float64) *types.Dataset {
	ds := &types.Dataset{Features: types.FeatureSet{Name: "test", Features: []string{"A", "B", "C"}}}
	for _, r := range rows {
		ds.Records = append(ds.Records, types.ClientRecord{
			NGR:   r[0],
			Costs: map[string]float64{"A": r[1], "B": r[2], "C": r[3]},
		})
	}
	return ds
}

func TestSummarize_RanksWithStableTies(t *testing.T) {
	ds := abcDataset(
		[4]float64{-1, 40, 100, 200},
		[4]float64{-1, 60, 200, 100},
		[4]float64{10, 1000, 1000, 1000}, // not in the negative segment
	)
	seg := segment.PartitionDataset(ds).NegativeNGR

	got, err := Summarize(seg, []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, types.RankedSummary{
		{Feature: "B", TotalEUR: 300},
		{Feature: "C", TotalEUR: 300},
		{Feature: "A", TotalEUR: 100},
	}, got)
}

func TestSummarize_TieOrderFollowsInput(t *testing.T) {
	ds := abcDataset([4]float64{-1, 5, 5, 5})
	seg := segment.PartitionDataset(ds).NegativeNGR

	got, err := Summarize(seg, []string{"C", "A", "B"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "C", got[0].Feature)
	assert.Equal(t, "A", got[1].Feature)
	assert.Equal(t, "B", got[2].Feature)
}

func TestSummarize_EachFeatureOnceDescending(t *testing.T) {
	ds := abcDataset([4]float64{-3, 1, -7, 2}, [4]float64{-2, 9, 3, 0.5})
	seg := segment.PartitionDataset(ds).NegativeNGR
	features := []string{"A", "B", "C"}

	got, err := Summarize(seg, features)
	require.NoError(t, err)
	require.Len(t, got, len(features))

	seen := map[string]int{}
	for i, ft := range got {
		seen[ft.Feature]++
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].TotalEUR, ft.TotalEUR)
		}
	}
	for _, f := range features {
		assert.Equal(t, 1, seen[f], f)
	}
}

func TestSummarize_DuplicateFeaturesReportedOnce(t *testing.T) {
	ds := abcDataset(
		[4]float64{-1, 5, 9, 0},
		[4]float64{-2, 5, 1, 0},
	)
	seg := segment.PartitionDataset(ds).NegativeNGR

	got, err := Summarize(seg, []string{"A", "B", "A"})
	require.NoError(t, err)
	assert.Equal(t, types.RankedSummary{
		{Feature: "A", TotalEUR: 10},
		{Feature: "B", TotalEUR: 10},
	}, got)
}

func TestSummarize_EmptySegment(t *testing.T) {
	seg := segment.PartitionDataset(abcDataset([4]float64{5, 1, 2, 3})).NegativeNGR

	got, err := Summarize(seg, []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, types.RankedSummary{{Feature: "A"}, {Feature: "B"}, {Feature: "C"}}, got)
}

func TestSummarize_UnknownFeature(t *testing.T) {
	seg := segment.PartitionDataset(abcDataset([4]float64{-1, 1, 1, 1})).NegativeNGR

	_, err := Summarize(seg, []string{"A", "LoyaltyCost_EUR_total"})

	var cfgErr *types.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "LoyaltyCost_EUR_total", cfgErr.Name)
	assert.Equal(t, "feature", cfgErr.Kind)
}
