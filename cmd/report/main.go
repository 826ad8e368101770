package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"ngr-insights-go/internal/actionable"
	"ngr-insights-go/internal/config"
	"ngr-insights-go/internal/dataset"
	"ngr-insights-go/internal/logger"
	"ngr-insights-go/internal/pipeline"
	"ngr-insights-go/internal/reporter"
	"ngr-insights-go/internal/segment"
	"ngr-insights-go/internal/types"
)

func main() {
	cfg := config.Load()
	format := flag.String("format", "markdown", "summary output format: markdown or csv")
	flag.StringVar(&cfg.BonusDatasetPath, "bonus", cfg.BonusDatasetPath, "aggregate bonus dataset (csv/xlsx)")
	flag.StringVar(&cfg.FreespinDatasetPath, "freespin", cfg.FreespinDatasetPath, "freespin per game dataset (csv/xlsx)")
	flag.StringVar(&cfg.DatasetDSN, "dsn", cfg.DatasetDSN, "read both datasets from MySQL instead of files")
	flag.Parse()

	log := logger.NewWithWriter(os.Stderr)

	datasets, err := dataset.LoadSources(context.Background(), cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to load datasets")
	}

	var reports []types.ReportPayload
	for _, ds := range datasets {
		p := pipeline.New(ds, log)
		ov, err := p.Summary()
		if err != nil {
			log.WithError(err).Fatal("summary failed")
		}
		if *format == "csv" {
			reports = append(reports, ov.Report)
		} else {
			fmt.Println(reporter.RenderMarkdown(ov.Report))
		}

		var results []types.SimulationResult
		bar := progressbar.NewOptions(len(segment.Names())*len(ds.Features.Features),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(ds.Features.Name+" what-if"),
		)
		for _, name := range segment.Names() {
			res, err := p.SimulateAll(name, func() { _ = bar.Add(1) })
			if err != nil {
				log.WithError(err).Fatal("simulation failed")
			}
			results = append(results, res...)
		}
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)

		if *format != "csv" {
			fmt.Println(reporter.RenderSimulationsMarkdown(ds.Features.Name, results))
			card := actionable.Generate(results)
			fmt.Printf("> %s\n> Action: %s\n> Impact: %s\n\n", card.Insight, card.Action, card.Impact)
		}
	}

	// csv output is one table on stdout; logs and progress stay on stderr
	if *format == "csv" {
		out, err := reporter.RenderCSV(reports...)
		if err != nil {
			log.WithError(err).Fatal("render csv")
		}
		fmt.Print(out)
	}
}
