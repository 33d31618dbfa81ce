package validation

import (
	"strings"
	"time"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func PositiveID(field string, id int64, v Violations) {
	if id <= 0 {
		v[field] = "must_be_positive"
	}
}

const dateLayout = "2006-01-02"

// maxYear caps date inputs at a sane horizon; anything beyond is a typo.
const maxYear = 2300

// ValidDateRange reports whether from and to form a usable promotion window:
// both parse as dates, from strictly precedes to, and neither year exceeds 2300.
func ValidDateRange(from, to string) bool {
	f, err := time.Parse(dateLayout, from)
	if err != nil {
		return false
	}
	t, err := time.Parse(dateLayout, to)
	if err != nil {
		return false
	}
	if !f.Before(t) {
		return false
	}
	return f.Year() <= maxYear && t.Year() <= maxYear
}

// ValidPhone accepts Bulgarian numbers in two forms: "+359" followed by nine
// digits (13 characters) or "0" followed by nine digits (10 characters).
func ValidPhone(phone string) bool {
	switch {
	case len(phone) == 13 && strings.HasPrefix(phone, "+359"):
		return allDigits(phone[4:])
	case len(phone) == 10 && strings.HasPrefix(phone, "0"):
		return allDigits(phone[1:])
	}
	return false
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
