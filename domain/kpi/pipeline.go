package kpi

import (
	"fmt"
	"math"
	"log/slog"

	dc "gppd-stats/domain/config"
	pp "gppd-stats/domain/powerplant"
)

// Pipeline derives the renewable-mix KPIs from a raw plant table.
type Pipeline struct {
	cfg        dc.Pipeline
	classifier Classifier
}

// Result holds every table produced by one run.
type Result struct {
	Plants        []pp.Plant // classified copies
	Records       []pp.GenerationRecord
	Completeness  []CountryCompleteness
	Countries     []string // countries kept by the completeness filter
	Retained      []pp.GenerationRecord
	ByCountry     []CountryAggregate
	ByCountryYear []CountryAggregate
	RecentYear    []CountryAggregate
	Comparison    []ShareComparison
	FuelMix       []FuelMix
	Checks        []RenewableCheck
}

func NewPipeline(cfg dc.Pipeline) (*Pipeline, error) {
	if math.IsNaN(cfg.MissingThreshold) || cfg.MissingThreshold < 0 || cfg.MissingThreshold > 1 {
		return nil, fmt.Errorf("missing threshold must be within [0,1], got %v", cfg.MissingThreshold)
	}
	cl, err := NewClassifier(cfg.FuelCategories, cfg.FuelAliases)
	if err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg, classifier: cl}, nil
}

func (p *Pipeline) aggregateOptions(g Granularity) AggregateOptions {
	return AggregateOptions{Granularity: g, IncludeUnknown: p.cfg.IncludeUnknownInTotal}
}

// Run executes classify, reshape, merge, filter and aggregate in order. Any stage error aborts the run.
func (p *Pipeline) Run(plants []pp.Plant) (*Result, error) {
	res := &Result{}
	res.Plants = p.classifier.ClassifyPlants(plants)
	slog.Info("phase.classify.done", "plants", len(res.Plants))

	actual, err := Unpivot(res.Plants, p.cfg.Actual.Columns())
	if err != nil {
		return nil, fmt.Errorf("reshape actual generation: %w", err)
	}
	estimated, err := Unpivot(res.Plants, p.cfg.Estimated.Columns())
	if err != nil {
		return nil, fmt.Errorf("reshape estimated generation: %w", err)
	}
	slog.Info("phase.reshape.done", "actual", len(actual), "estimated", len(estimated))

	res.Records = MergeSeries(actual, estimated)
	slog.Info("phase.merge.done", "records", len(res.Records))

	res.Retained, res.Completeness, res.Countries, err = FilterComplete(res.Records, p.cfg.MissingThreshold)
	if err != nil {
		return nil, fmt.Errorf("completeness filter: %w", err)
	}
	slog.Info("phase.filter.done", "threshold", p.cfg.MissingThreshold, "countries", len(res.Completeness), "kept", len(res.Countries), "records", len(res.Retained))

	res.ByCountry = Aggregate(res.Retained, p.aggregateOptions(ByCountry))
	res.ByCountryYear = Aggregate(res.Retained, p.aggregateOptions(ByCountryYear))
	res.RecentYear = AggregateYear(res.Retained, p.cfg.RecentYear, p.aggregateOptions(ByCountry))
	res.Comparison = CompareShares(res.ByCountry, res.RecentYear, p.cfg.RecentYear)
	res.FuelMix = PlantFuelMix(res.Retained)
	res.Checks = CheckFullyRenewable(res.Retained, res.ByCountry)
	slog.Info("phase.aggregate.done", "countries", len(res.ByCountry), "countryYears", len(res.ByCountryYear), "fullyRenewable", len(res.Checks))
	return res, nil
}
