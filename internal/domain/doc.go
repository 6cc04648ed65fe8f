// Package domain models USGS earthquake events and the per-state risk
// rollup computed from them.
//
// # Data Source
//
// Events come from the USGS FDSN event web service at
// https://earthquake.usgs.gov/fdsnws/event/1/query, requested as a GeoJSON
// FeatureCollection. The query is scoped to a bounding box around the
// continental US and Alaska, a minimum magnitude of 2.5 and a day window
// ending now.
//
// # USGS Data Conventions
//
// Place format:
//
//	"<distance> km <compass> of <locality>, <region>"  →  e.g. "10 km SE of Ridgecrest, CA"
//	The region is a two-letter code for most lower-48 states ("CA", "NV")
//	but a full name for others ("Alaska", "Idaho") and for foreign regions
//	("Mexico", "Canada"). Some places carry no region at all
//	("offshore Northern California", "Gulf of Alaska").
//
// Time format:
//
//	properties.time is Unix epoch milliseconds, UTC.
//
// Magnitude:
//
//	properties.mag is a float and may be null for events still under review.
//
// Coordinates:
//
//	geometry.coordinates is [longitude, latitude, depth_km].
//
// # State Matching
//
// Aggregates are keyed by the region string exactly as it appears in the
// place text. Client locations must use the same spelling to match: "Alaska"
// matches events labelled "Alaska" but not "AK". [CanonicalState] can reduce
// both sides to postal codes when that is wanted.
//
// # Risk Tiers
//
// A location's tier is derived from its state's aggregate:
//
//	High:     count > 10 or max magnitude >= 5.0
//	Moderate: count > 5  or max magnitude >= 3.0
//	Low:      any other matched state
//	Unknown:  no events recorded for the state
package domain
