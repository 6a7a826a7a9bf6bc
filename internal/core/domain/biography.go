package domain

import (
	"strings"
	"time"
)

// MaxAboutLength bounds the free-text biography.
const MaxAboutLength = 10000

// BirthdayLayout is the date format exchanged with the backend.
const BirthdayLayout = "2006-01-02"

// Biography holds the about text and birthday of a user.
type Biography struct {
	About    string
	Birthday string
}

// AboutDraft is validated before the biography text is sent.
type AboutDraft struct {
	About string `validate:"max=10000"`
}

// BirthdayDraft is validated before the birthday is sent.
type BirthdayDraft struct {
	Birthday string `validate:"required,datetime=2006-01-02"`
}

// ParseBirthday accepts a plain date or the timestamp form the backend
// returns for DATE columns.
func ParseBirthday(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(BirthdayLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// NormalizeBirthday reduces any accepted birthday form to YYYY-MM-DD.
func NormalizeBirthday(s string) string {
	t, ok := ParseBirthday(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	return t.Format(BirthdayLayout)
}

// AgeOn returns the age in whole years at now, or -1 when birthday does not
// parse or lies in the future.
func AgeOn(birthday string, now time.Time) int {
	b, ok := ParseBirthday(birthday)
	if !ok {
		return -1
	}
	age := now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	if age < 0 {
		return -1
	}
	return age
}
