package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractState(t *testing.T) {
	tests := []struct {
		name  string
		place string
		want  string
	}{
		{name: "two-letter code", place: "10km SE of Example, CA", want: "CA"},
		{name: "full state name", place: "Example, Alaska", want: "Alaska"},
		{name: "empty", place: "", want: ""},
		{name: "no comma", place: "Offshore region", want: ""},
		{name: "last comma wins", place: "5 km N of Town, Some County, NV", want: "NV"},
		{name: "surrounding whitespace", place: "Somewhere,   Idaho  ", want: "Idaho"},
		{name: "lowercase code kept verbatim", place: "Somewhere, ca", want: "ca"},
		{name: "foreign region", place: "20 km S of Tijuana, B.C., MX", want: "MX"},
		{name: "trailing comma", place: "Somewhere,", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractState(tt.place))
		})
	}
}

func TestIsStateCode(t *testing.T) {
	assert.True(t, IsStateCode("CA"))
	assert.True(t, IsStateCode("AK"))
	assert.False(t, IsStateCode("ca"))
	assert.False(t, IsStateCode("Ca"))
	assert.False(t, IsStateCode("CAL"))
	assert.False(t, IsStateCode("C"))
	assert.False(t, IsStateCode("C1"))
	assert.False(t, IsStateCode(""))
}

func TestCanonicalState(t *testing.T) {
	assert.Equal(t, "AK", CanonicalState("Alaska"))
	assert.Equal(t, "AK", CanonicalState("AK"))
	assert.Equal(t, "NV", CanonicalState("Nevada"))
	assert.Equal(t, "NM", CanonicalState("New Mexico"))
	assert.Equal(t, "Mexico", CanonicalState("Mexico"))
	assert.Equal(t, "alaska", CanonicalState("alaska"))
	assert.Equal(t, "", CanonicalState(""))
}
