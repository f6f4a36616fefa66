package utils

import (
	"strings"
	"time"
)

// TripDateLayout is the MM/DD/YYYY format the mobile client sends. Single
// digit months and days are accepted as well.
const TripDateLayout = "1/2/2006"

func ParseTripDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(TripDateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// NightsBetween returns the day difference between two MM/DD/YYYY dates,
// never less than one night. ok is false when either date does not parse.
func NightsBetween(start, end string) (nights int, ok bool) {
	from, ok := ParseTripDate(start)
	if !ok {
		return 0, false
	}
	to, ok := ParseTripDate(end)
	if !ok {
		return 0, false
	}
	nights = int(to.Sub(from).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights, true
}
