// Package dateutils provides common date operations used throughout the
// application: lenient parsing for user-supplied dates and the canonical
// bucket keys used by time-series aggregation.
package dateutils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"fjacquet/receipt-csv/internal/parsererror"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutUS        = "01/02/2006"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutWithMonth = "Jan 2, 2006"
)

// CommonFormats is the list of formats tried when parsing user-supplied
// dates (CLI flags, config values). Receipt text goes through the extractor
// instead, which has its own pattern priorities.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutUS,
	DateLayoutEuropean,
	DateLayoutWithMonth,
	"2006/01/02",
	"02-01-2006",
	"January 2, 2006",
}

// ParseDate attempts to parse a date string using the common formats.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &parsererror.ExtractionError{
		Field: "date",
		Value: dateStr,
		Err:   errors.New("no known date format matched"),
	}
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString trims and collapses whitespace in a date string.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	re := regexp.MustCompile(`\s+`)
	return re.ReplaceAllString(dateStr, " ")
}

// MonthKey returns the canonical month bucket key (YYYY-MM).
func MonthKey(date time.Time) string {
	return date.Format("2006-01")
}

// YearKey returns the canonical year bucket key (YYYY).
func YearKey(date time.Time) string {
	return date.Format("2006")
}

// WeekKey returns the canonical ISO-week bucket key (YYYY-Www).
// The year is the ISO week-year, which differs from the calendar year around
// January 1st.
func WeekKey(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// DayKey returns the canonical day bucket key (YYYY-MM-DD).
func DayKey(date time.Time) string {
	return date.Format(DateLayoutISO)
}
