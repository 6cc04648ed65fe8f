package pipeline

import (
	"github.com/couchcryptid/quake-risk-report/internal/domain"
)

// Rules controls how fetched events are filtered and how locations are classified.
type Rules struct {
	ExcludedStates []string
	Thresholds     domain.RiskThresholds
	Canonicalize   bool
	Locations      []domain.ClientLocation
}

// Result is everything a run produced, in pipeline order.
type Result struct {
	DaysBack     int
	Window       domain.Window // the window the fetch queried
	Fetched      int
	Excluded     int
	Resolved     int // states filled in from coordinates
	Unattributed int

	Events      []domain.EventRecord // after the excluded-state filter
	Aggregates  []domain.StateAggregate
	Assessments []domain.RiskAssessment
}

// Transform filters, aggregates and classifies fetched records.
// It is pure: the same records and rules always give the same result.
func Transform(records []domain.EventRecord, rules Rules) Result {
	events := domain.ExcludeStates(records, rules.ExcludedStates)
	aggs := domain.Aggregate(events)

	var assessments []domain.RiskAssessment
	if rules.Canonicalize {
		assessments = domain.ClassifyAllCanonical(rules.Locations, aggs, rules.Thresholds)
	} else {
		assessments = domain.ClassifyAll(rules.Locations, aggs, rules.Thresholds)
	}

	return Result{
		Fetched:      len(records),
		Excluded:     len(records) - len(events),
		Unattributed: domain.CountUnattributed(events),
		Events:       events,
		Aggregates:   aggs,
		Assessments:  assessments,
	}
}
