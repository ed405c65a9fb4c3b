package entities

import (
	"regexp"
	"strings"
	"time"
)

// Gender is a closed set; anything unrecognized folds to GenderUnknown.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

// ParseGender maps a raw string to a Gender, folding unknown values.
func ParseGender(s string) Gender {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale
	case GenderFemale:
		return GenderFemale
	case GenderOther:
		return GenderOther
	default:
		return GenderUnknown
	}
}

// BloodType is a closed set; anything unrecognized folds to BloodUnknown.
type BloodType string

const (
	BloodA       BloodType = "A"
	BloodB       BloodType = "B"
	BloodAB      BloodType = "AB"
	BloodO       BloodType = "O"
	BloodUnknown BloodType = "unknown"
)

// ParseBloodType maps a raw string to a BloodType, folding unknown values.
func ParseBloodType(s string) BloodType {
	switch BloodType(strings.ToUpper(strings.TrimSpace(s))) {
	case BloodA:
		return BloodA
	case BloodB:
		return BloodB
	case BloodAB:
		return BloodAB
	case BloodO:
		return BloodO
	default:
		return BloodUnknown
	}
}

// reBirthDate matches the YYYY-MM-DD birth date format.
var reBirthDate = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// Person is a member of the family graph.
type Person struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Gender    Gender    `json:"gender"`
	BloodType BloodType `json:"bloodType"`
	BirthDate string    `json:"birthDate"` // "YYYY-MM-DD" or empty
	PhotoRef  string    `json:"photoUri"`
	Note      string    `json:"note"`
}

// PersonDraft carries the mutable fields for add/update operations.
type PersonDraft struct {
	Name      string
	Gender    Gender
	BloodType BloodType
	BirthDate string
	PhotoRef  string
	Note      string
}

// Age returns the person's age in full years at the given time, or -1 when
// the birth date is absent, malformed, or yields an implausible age.
func (p Person) Age(now time.Time) int {
	m := reBirthDate.FindStringSubmatch(p.BirthDate)
	if m == nil {
		return -1
	}
	birth, err := time.Parse("2006-01-02", p.BirthDate)
	if err != nil {
		return -1
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 || age > 130 {
		return -1
	}
	return age
}
