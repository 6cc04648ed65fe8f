package domain

// DefaultClientLocations returns the client buildings assessed on every run.
// The State values are matched verbatim against aggregated event states,
// which mix codes ("CA") and full names ("Alaska").
func DefaultClientLocations() []ClientLocation {
	return []ClientLocation{
		{
			Building: "West Anchorage High School",
			City:     "Anchorage",
			State:    "Alaska",
			Address:  "1700 Hillcrest Dr, Anchorage, AK 99517",
		},
		{
			Building: "City Hall",
			City:     "San Francisco",
			State:    "CA",
			Address:  "1 Dr Carlton B Goodlett Pl, San Francisco, CA 94102",
		},
		{
			Building: "Los Angeles Memorial Coliseum",
			City:     "Los Angeles",
			State:    "CA",
			Address:  "3911 S Figueroa St, Los Angeles, CA 90037",
		},
		{
			Building: "Harrah's Reno (Former)",
			City:     "Reno",
			State:    "Nevada",
			Address:  "219 N Center St, Reno, NV 89501",
		},
		{
			Building: "Benson Polytechnic High School",
			City:     "Portland",
			State:    "Oregon",
			Address:  "546 NE 12th Ave, Portland, OR 97232",
		},
		{
			Building: "Salt Lake Temple",
			City:     "Salt Lake City",
			State:    "Utah",
			Address:  "50 N Temple, Salt Lake City, UT 84150",
		},
		{
			Building: "Challis High School",
			City:     "Challis",
			State:    "Idaho",
			Address:  "1 Schoolhouse Rd, Challis, ID 83226",
		},
	}
}
