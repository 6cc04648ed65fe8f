package domain

import "strings"

// ExtractState derives a US state from a USGS place description such as
// "10 km SE of Ridgecrest, CA" or "45 km W of Anchor Point, Alaska".
// The trailing comma-separated segment is returned trimmed, either as a
// two-letter code or as a full state name. Places without a comma
// ("offshore Northern California") yield "".
func ExtractState(place string) string {
	if place == "" {
		return ""
	}
	i := strings.LastIndex(place, ",")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(place[i+1:])
}

// IsStateCode reports whether s looks like a two-letter state code ("CA").
func IsStateCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// stateCodes maps full US state names, as USGS spells them in place
// strings, to their postal codes.
var stateCodes = map[string]string{
	"Alabama":        "AL",
	"Alaska":         "AK",
	"Arizona":        "AZ",
	"Arkansas":       "AR",
	"California":     "CA",
	"Colorado":       "CO",
	"Connecticut":    "CT",
	"Delaware":       "DE",
	"Florida":        "FL",
	"Georgia":        "GA",
	"Hawaii":         "HI",
	"Idaho":          "ID",
	"Illinois":       "IL",
	"Indiana":        "IN",
	"Iowa":           "IA",
	"Kansas":         "KS",
	"Kentucky":       "KY",
	"Louisiana":      "LA",
	"Maine":          "ME",
	"Maryland":       "MD",
	"Massachusetts":  "MA",
	"Michigan":       "MI",
	"Minnesota":      "MN",
	"Mississippi":    "MS",
	"Missouri":       "MO",
	"Montana":        "MT",
	"Nebraska":       "NE",
	"Nevada":         "NV",
	"New Hampshire":  "NH",
	"New Jersey":     "NJ",
	"New Mexico":     "NM",
	"New York":       "NY",
	"North Carolina": "NC",
	"North Dakota":   "ND",
	"Ohio":           "OH",
	"Oklahoma":       "OK",
	"Oregon":         "OR",
	"Pennsylvania":   "PA",
	"Rhode Island":   "RI",
	"South Carolina": "SC",
	"South Dakota":   "SD",
	"Tennessee":      "TN",
	"Texas":          "TX",
	"Utah":           "UT",
	"Vermont":        "VT",
	"Virginia":       "VA",
	"Washington":     "WA",
	"West Virginia":  "WV",
	"Wisconsin":      "WI",
	"Wyoming":        "WY",
	"Puerto Rico":    "PR",
}

// CanonicalState maps a full state name to its two-letter code. Codes and
// unrecognized names (e.g. "Mexico", "Canada") are returned unchanged.
func CanonicalState(state string) string {
	if IsStateCode(state) {
		return state
	}
	if code, ok := stateCodes[state]; ok {
		return code
	}
	return state
}
