package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"ngr-insights-go/internal/actionable"
	"ngr-insights-go/internal/logger"
	"ngr-insights-go/internal/pipeline"
	"ngr-insights-go/internal/segment"
	"ngr-insights-go/internal/types"
)

type Server struct {
	order     []string
	pipelines map[string]*pipeline.Pipeline
	log       *logger.Logger
}

func NewServer(log *logger.Logger, pipelines ...*pipeline.Pipeline) *Server {
	s := &Server{pipelines: map[string]*pipeline.Pipeline{}, log: log}
	for _, p := range pipelines {
		s.order = append(s.order, p.Name())
		s.pipelines[p.Name()] = p
	}
	return s
}

// Router wires the HTTP endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		s.log.WithRequest(r).Debug("health check")
		fmt.Fprint(w, "ok")
	})
	r.Get("/datasets", s.listDatasets)
	r.Route("/datasets/{name}", func(r chi.Router) {
		r.Get("/summary", s.summary)
		r.Get("/simulate", s.simulate)
		r.Get("/insight", s.insight)
	})

	return r
}

type datasetInfo struct {
	Name     string           `json:"name"`
	Features types.FeatureSet `json:"features"`
	Segments []string         `json:"segments"`
}

func (s *Server) listDatasets(w http.ResponseWriter, r *http.Request) {
	out := make([]datasetInfo, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, datasetInfo{
			Name:     name,
			Features: s.pipelines[name].Features(),
			Segments: segment.Names(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "summary")
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	ov, err := p.Summary()
	if err != nil {
		reqLog.WithError(err).Warn("summary failed")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "simulate")
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	seg := r.URL.Query().Get("segment")
	feature := r.URL.Query().Get("feature")
	reqLog = reqLog.WithField("segment", seg).WithField("feature", feature)

	res, err := p.HandleSelection(seg, feature)
	if err != nil {
		reqLog.WithError(err).Warn("selection rejected")
		writeError(w, err)
		return
	}
	reqLog.WithField("baseline", res.BaselineCount).WithField("adjusted", res.AdjustedCount).Info("selection handled")
	writeJSON(w, http.StatusOK, res)
}

type insightResponse struct {
	Results []types.SimulationResult `json:"results"`
	Card    actionable.ActionCard    `json:"action_card"`
}

func (s *Server) insight(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	seg := r.URL.Query().Get("segment")
	if seg == "" {
		seg = types.SegmentNegativeNGR
	}
	results, err := p.SimulateAll(seg, nil)
	if err != nil {
		s.log.WithRequest(r).WithError(err).Warn("sweep rejected")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insightResponse{Results: results, Card: actionable.Generate(results)})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*pipeline.Pipeline, bool) {
	name := chi.URLParam(r, "name")
	p, ok := s.pipelines[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("unknown dataset %q", name)})
	}
	return p, ok
}

func writeError(w http.ResponseWriter, err error) {
	var cfgErr *types.ConfigurationError
	if errors.As(err, &cfgErr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// writeJSON encodes v before any header goes out, so an unencodable value
// (NaN totals, say) becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": fmt.Sprintf("encode response: %v", err)})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
