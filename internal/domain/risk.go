package domain

// RiskThresholds are the cut-offs for the High and Moderate tiers.
// Counts are compared with > and magnitudes with >=.
type RiskThresholds struct {
	HighCount         int
	HighMagnitude     float64
	ModerateCount     int
	ModerateMagnitude float64
}

// DefaultRiskThresholds: High above 10 events or M5.0+, Moderate above
// 5 events or M3.0+, otherwise Low.
func DefaultRiskThresholds() RiskThresholds {
	return RiskThresholds{
		HighCount:         10,
		HighMagnitude:     5.0,
		ModerateCount:     5,
		ModerateMagnitude: 3.0,
	}
}

// Classify assigns a risk tier to loc using the aggregate recorded for its
// state. The lookup is an exact string match, so a location configured as
// "Alaska" does not see events aggregated under "AK".
//
// This is a coarse heuristic over recent activity, not a hazard model.
func Classify(loc ClientLocation, byState map[string]StateAggregate, th RiskThresholds) RiskAssessment {
	agg, ok := byState[loc.State]
	if !ok {
		return RiskAssessment{Location: loc, Risk: RiskUnknown}
	}

	count := agg.Count
	a := RiskAssessment{
		Location:     loc,
		Count:        &count,
		MaxMagnitude: agg.MaxMagnitude,
	}

	switch {
	case agg.Count > th.HighCount || magnitudeAtLeast(agg.MaxMagnitude, th.HighMagnitude):
		a.Risk = RiskHigh
	case agg.Count > th.ModerateCount || magnitudeAtLeast(agg.MaxMagnitude, th.ModerateMagnitude):
		a.Risk = RiskModerate
	default:
		a.Risk = RiskLow
	}
	return a
}

// ClassifyAll classifies every location, preserving input order.
func ClassifyAll(locs []ClientLocation, aggs []StateAggregate, th RiskThresholds) []RiskAssessment {
	byState := IndexByState(aggs)
	out := make([]RiskAssessment, len(locs))
	for i, loc := range locs {
		out[i] = Classify(loc, byState, th)
	}
	return out
}

// ClassifyAllCanonical is ClassifyAll with both sides reduced to two-letter
// codes first. The returned assessments keep the locations as configured.
func ClassifyAllCanonical(locs []ClientLocation, aggs []StateAggregate, th RiskThresholds) []RiskAssessment {
	byState := IndexByState(CanonicalizeAggregates(aggs))
	out := make([]RiskAssessment, len(locs))
	for i, loc := range locs {
		lookup := loc
		lookup.State = CanonicalState(loc.State)
		a := Classify(lookup, byState, th)
		a.Location = loc
		out[i] = a
	}
	return out
}

func magnitudeAtLeast(m *float64, threshold float64) bool {
	return m != nil && *m >= threshold
}
