package utils

import (
	"fmt"
	"strings"
	"time"
)

var (
	frenchDays   = [...]string{"Dimanche", "Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi"}
	frenchMonths = [...]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"}
)

var localLayouts = []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02T15:04:05", "2006-01-02T15:04"}

// ParseLocal parses a Billetweb local datetime such as "2026-04-24 20:00".
// The result carries no zone information beyond UTC.
func ParseLocal(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised datetime %q", s)
}

// FrenchDay formats t as "Vendredi 24 avril".
func FrenchDay(t time.Time) string {
	return fmt.Sprintf("%s %d %s", frenchDays[t.Weekday()], t.Day(), frenchMonths[t.Month()-1])
}

// FrenchTime formats t as "20h00".
func FrenchTime(t time.Time) string {
	return fmt.Sprintf("%dh%02d", t.Hour(), t.Minute())
}

// FrenchDateRange describes the span between first and last, e.g.
// "le 24 avril 2026", "du 24 au 26 avril 2026" or
// "du 30 avril 2026 au 2 mai 2026".
func FrenchDateRange(first, last time.Time) string {
	month := func(t time.Time) string { return frenchMonths[t.Month()-1] }
	switch {
	case first.Year() == last.Year() && first.YearDay() == last.YearDay():
		return fmt.Sprintf("le %d %s %d", first.Day(), month(first), first.Year())
	case first.Year() == last.Year() && first.Month() == last.Month():
		return fmt.Sprintf("du %d au %d %s %d", first.Day(), last.Day(), month(last), last.Year())
	default:
		return fmt.Sprintf("du %d %s %d au %d %s %d",
			first.Day(), month(first), first.Year(), last.Day(), month(last), last.Year())
	}
}
