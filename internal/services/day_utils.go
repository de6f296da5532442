package services

import (
	"math"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

// CalendarDay anchors value to its civil day in the reference calendar. The
// year, month and day are taken as-is from value's own location.
func CalendarDay(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return CalendarDay(value.In(location))
}

func DayRange(value time.Time) (time.Time, time.Time) {
	start := CalendarDay(value)
	return start, start.AddDate(0, 0, 1)
}

func AddDays(value time.Time, days int) time.Time {
	return CalendarDay(value).AddDate(0, 0, days)
}

// DaysBetween returns the signed number of calendar days from one day to another.
func DaysBetween(from time.Time, to time.Time) int {
	hours := CalendarDay(to).Sub(CalendarDay(from)).Hours()
	return int(math.Round(hours / 24))
}

func ParseDay(raw string) (time.Time, error) {
	parsed, err := time.Parse(DayLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}
	return CalendarDay(parsed), nil
}

func FormatDay(value time.Time) string {
	return CalendarDay(value).Format(DayLayout)
}
