package api

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"ngr-insights-go/internal/logger"
	"ngr-insights-go/internal/pipeline"
	"ngr-insights-go/internal/types"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	fs := types.BonusFeatureSet()
	rec := func(ngr, ggr, loyalty float64) types.ClientRecord {
		costs := map[string]float64{}
		for _, f := range fs.Features {
			costs[f] = 0
		}
		costs["LoyaltyCost_EUR_total"] = loyalty
		return types.ClientRecord{NGR: ngr, GGR: ggr, Costs: costs}
	}
	bonus := &types.Dataset{Features: fs, Records: []types.ClientRecord{
		rec(-10, 5, 15), rec(-5, -1, 3), rec(-20, 0, 25), rec(8, 9, 1),
	}}
	freespin := &types.Dataset{Features: types.FreespinFeatureSet()}

	log := logger.NewWithWriter(io.Discard)
	srv := NewServer(log, pipeline.New(bonus, log), pipeline.New(freespin, log))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestListDatasets(t *testing.T) {
	ts := newTestServer(t)
	var out []datasetInfo
	require.Equal(t, http.StatusOK, get(t, ts, "/datasets", &out))
	require.Len(t, out, 2)
	assert.Equal(t, "bonus", out[0].Name)
	assert.Equal(t, "freespin", out[1].Name)
	assert.Len(t, out[1].Features.Features, 9)
}

func TestSummaryEndpoint(t *testing.T) {
	ts := newTestServer(t)
	var out pipeline.Overview
	require.Equal(t, http.StatusOK, get(t, ts, "/datasets/bonus/summary", &out))

	require.NotEmpty(t, out.Report.Rows)
	assert.Equal(t, "LoyaltyCost_EUR_total", out.Report.Rows[0].Feature)
	assert.InDelta(t, 1.0, out.Report.Rows[0].Share, 1e-9)
	assert.Equal(t, 3, out.Segments[0].Clients)
}

func TestSimulateEndpoint(t *testing.T) {
	ts := newTestServer(t)
	q := url.Values{"segment": {"Negative NGR Clients"}, "feature": {"LoyaltyCost_EUR_total"}}

	var res types.SimulationResult
	require.Equal(t, http.StatusOK, get(t, ts, "/datasets/bonus/simulate?"+q.Encode(), &res))
	assert.Equal(t, 3, res.BaselineCount)
	assert.Equal(t, 1, res.AdjustedCount)
	assert.Equal(t, "LoyaltyCost", res.DisplayName)
}

func TestSimulateEndpoint_Errors(t *testing.T) {
	ts := newTestServer(t)

	q := url.Values{"segment": {"negative_ngr"}, "feature": {"LoyaltyCost_EUR_total"}}
	assert.Equal(t, http.StatusBadRequest, get(t, ts, "/datasets/freespin/simulate?"+q.Encode(), nil))

	q = url.Values{"segment": {"vip"}, "feature": {"LoyaltyCost_EUR_total"}}
	var body map[string]string
	assert.Equal(t, http.StatusBadRequest, get(t, ts, "/datasets/bonus/simulate?"+q.Encode(), &body))
	assert.Contains(t, body["error"], "segment")

	assert.Equal(t, http.StatusNotFound, get(t, ts, "/datasets/sports/summary", nil))
}

func TestInsightEndpoint(t *testing.T) {
	ts := newTestServer(t)
	var out insightResponse
	require.Equal(t, http.StatusOK, get(t, ts, "/datasets/bonus/insight", &out))
	assert.Len(t, out.Results, 7)
	assert.Contains(t, out.Card.Insight, "LoyaltyCost")
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	rec := httptest.NewRecorder()

	writeJSON(rec, http.StatusOK, map[string]float64{"total_eur": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "encode response")
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	writeJSON(rec, http.StatusCreated, map[string]int{"clients": 3})

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body["clients"])
}
