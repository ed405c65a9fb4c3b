package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseGender(t *testing.T) {
	tests := []struct {
		input string
		want  Gender
	}{
		{"male", GenderMale},
		{"Female", GenderFemale},
		{" other ", GenderOther},
		{"unknown", GenderUnknown},
		{"", GenderUnknown},
		{"martian", GenderUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseGender(tt.input), "input %q", tt.input)
	}
}

func TestParseBloodType(t *testing.T) {
	tests := []struct {
		input string
		want  BloodType
	}{
		{"A", BloodA},
		{"b", BloodB},
		{"ab", BloodAB},
		{"O", BloodO},
		{"", BloodUnknown},
		{"C", BloodUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseBloodType(tt.input), "input %q", tt.input)
	}
}

func TestPersonAge(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthDate string
		want      int
	}{
		{"birthday passed", "1994-03-15", 32},
		{"birthday today", "1994-09-01", 32},
		{"birthday upcoming", "1994-12-31", 31},
		{"unset", "", -1},
		{"malformed", "15.03.1994", -1},
		{"future", "2030-01-01", -1},
		{"implausible", "1850-01-01", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Person{BirthDate: tt.birthDate}
			assert.Equal(t, tt.want, p.Age(now))
		})
	}
}
