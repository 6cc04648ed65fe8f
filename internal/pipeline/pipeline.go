package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/quake-risk-report/internal/config"
	"github.com/couchcryptid/quake-risk-report/internal/domain"
	"github.com/couchcryptid/quake-risk-report/internal/observability"
)

// Fetcher returns the raw event records reported within a window.
type Fetcher interface {
	FetchWindow(ctx context.Context, w domain.Window) ([]domain.EventRecord, error)
}

// Publisher delivers assessments to a downstream consumer.
type Publisher interface {
	Publish(ctx context.Context, assessments []domain.RiskAssessment) error
}

// Pipeline runs one fetch-filter-aggregate-classify pass.
type Pipeline struct {
	fetcher   Fetcher
	resolver  domain.StateResolver
	publisher Publisher
	daysBack  int
	rules     Rules
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline. A nil resolver leaves events without a state in
// their place text unattributed; a nil publisher skips publishing.
func New(f Fetcher, r domain.StateResolver, p Publisher, cfg *config.Config, locations []domain.ClientLocation, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher:   f,
		resolver:  r,
		publisher: p,
		daysBack:  cfg.DaysBack,
		rules: Rules{
			ExcludedStates: cfg.ExcludedStates,
			Thresholds:     cfg.RiskThresholds,
			Canonicalize:   cfg.CanonicalizeStates,
			Locations:      locations,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// Run fetches events for w and computes the per-state aggregates and
// location assessments. A fetch failure aborts the run; there is no retry
// and no partial result.
func (p *Pipeline) Run(ctx context.Context, w domain.Window) (Result, error) {
	p.logger.Info("fetching earthquake events",
		"days_back", p.daysBack,
		"start", w.Start,
		"end", w.End,
	)

	records, err := p.fetcher.FetchWindow(ctx, w)
	if err != nil {
		return Result{}, fmt.Errorf("fetch events: %w", err)
	}

	records, resolved := domain.ResolveMissingStates(ctx, records, p.resolver, p.logger)

	res := Transform(records, p.rules)
	res.DaysBack = p.daysBack
	res.Window = w
	res.Resolved = resolved

	p.metrics.EventsExcluded.Add(float64(res.Excluded))
	p.metrics.EventsUnattributed.Add(float64(res.Unattributed))
	p.metrics.StatesAggregated.Set(float64(len(res.Aggregates)))
	for _, a := range res.Assessments {
		p.metrics.Assessments.WithLabelValues(string(a.Risk)).Inc()
	}

	if res.Unattributed > 0 {
		p.logger.Warn("events without a recognizable state left out of aggregates", "count", res.Unattributed)
	}
	p.logger.Info("assessment complete",
		"fetched", res.Fetched,
		"excluded", res.Excluded,
		"resolved", res.Resolved,
		"states", len(res.Aggregates),
		"locations", len(res.Assessments),
	)
	return res, nil
}

// Publish sends the run's assessments to the publisher, if one is configured.
func (p *Pipeline) Publish(ctx context.Context, res Result) error {
	if p.publisher == nil {
		return nil
	}
	if err := p.publisher.Publish(ctx, res.Assessments); err != nil {
		return err
	}
	p.metrics.AssessmentsPublished.Add(float64(len(res.Assessments)))
	return nil
}
