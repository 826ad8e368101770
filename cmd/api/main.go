package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"ngr-insights-go/internal/api"
	"ngr-insights-go/internal/config"
	"ngr-insights-go/internal/dataset"
	"ngr-insights-go/internal/logger"
	"ngr-insights-go/internal/pipeline"
)

func main() {
	cfg := config.Load()

	log := logger.New()
	log.Info("starting service")

	// datasets are loaded once and stay read-only for the process lifetime
	datasets, err := dataset.LoadSources(context.Background(), cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to load datasets")
	}
	pipelines := make([]*pipeline.Pipeline, 0, len(datasets))
	for _, ds := range datasets {
		log.WithField("dataset", ds.Features.Name).WithField("records", ds.Len()).Info("dataset ready")
		pipelines = append(pipelines, pipeline.New(ds, log))
	}

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewServer(log, pipelines...).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
