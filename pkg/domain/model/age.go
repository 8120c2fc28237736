package model

import (
	"fmt"
	"strings"
	"time"
)

const birthDateLayout = "2006-01-02"

// AgeLessThanMonth is the rendering of an age below one month
const AgeLessThanMonth = "أقل من شهر"

// Age is an elapsed calendar duration in whole years and months
type Age struct {
	Years  int
	Months int
}

// CalcAge computes the calendar age at now for a YYYY-MM-DD birth date.
// When the current day of month precedes the birth day, one month is
// borrowed. It returns false for an empty, malformed or future date.
func CalcAge(birthDate string, now time.Time) (Age, bool) {
	if birthDate == "" {
		return Age{}, false
	}
	birth, err := time.ParseInLocation(birthDateLayout, birthDate, now.Location())
	if err != nil {
		return Age{}, false
	}

	years := now.Year() - birth.Year()
	months := int(now.Month()) - int(birth.Month())
	if now.Day() < birth.Day() {
		months--
	}
	if months < 0 {
		years--
		months += 12
	}
	if years < 0 {
		return Age{}, false
	}

	return Age{Years: years, Months: months}, true
}

// String renders the age in Arabic with dual and plural forms
func (a Age) String() string {
	if a.Years == 0 && a.Months == 0 {
		return AgeLessThanMonth
	}

	var parts []string
	if a.Years > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", a.Years, pluralize(a.Years, "سنة", "سنتان", "سنوات")))
	}
	if a.Months > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", a.Months, pluralize(a.Months, "شهر", "شهران", "أشهر")))
	}
	return strings.Join(parts, " و ")
}

func pluralize(n int, one, two, many string) string {
	switch {
	case n == 1:
		return one
	case n == 2:
		return two
	default:
		return many
	}
}

// DeriveAge returns the rendered age for birthDate, or "" when the date
// cannot be used.
func DeriveAge(birthDate string, now time.Time) string {
	age, ok := CalcAge(birthDate, now)
	if !ok {
		return ""
	}
	return age.String()
}
