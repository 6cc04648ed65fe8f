package domain

import "time"

// EventRecord is one seismic event parsed from the USGS feed.
// An empty Place or State means the feed did not provide one (or no state
// could be derived); a nil Magnitude means the feed reported mag as null.
type EventRecord struct {
	Time      time.Time `json:"time"`
	Place     string    `json:"place,omitempty"`
	Magnitude *float64  `json:"mag"`
	Longitude float64   `json:"longitude"`
	Latitude  float64   `json:"latitude"`
	State     string    `json:"state,omitempty"`
}

// StateAggregate is the per-state rollup of filtered events.
type StateAggregate struct {
	State        string   `json:"state"`
	Count        int      `json:"count"`
	MaxMagnitude *float64 `json:"max_magnitude"`
}

// ClientLocation is a building whose earthquake exposure is assessed.
type ClientLocation struct {
	Building string `json:"building"`
	City     string `json:"city"`
	State    string `json:"state"`
	Address  string `json:"address"`
}

// RiskTier is the coarse risk label assigned to a client location.
type RiskTier string

const (
	RiskHigh     RiskTier = "High"
	RiskModerate RiskTier = "Moderate"
	RiskLow      RiskTier = "Low"
	RiskUnknown  RiskTier = "Unknown"
)

// RiskAssessment is the classification of one client location. Count and
// MaxMagnitude are nil when no aggregate matched the location's state.
type RiskAssessment struct {
	Location     ClientLocation `json:"location"`
	Risk         RiskTier       `json:"risk"`
	Count        *int           `json:"count"`
	MaxMagnitude *float64       `json:"max_magnitude"`
}

// BoundingBox is the latitude/longitude rectangle the event query is scoped to.
type BoundingBox struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
}

// Window is the UTC time range a fetch covers.
type Window struct {
	Start time.Time
	End   time.Time
}

// LookbackWindow returns the window ending at now and starting daysBack days earlier.
func LookbackWindow(now time.Time, daysBack int) Window {
	end := now.UTC()
	return Window{Start: end.AddDate(0, 0, -daysBack), End: end}
}
