package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrRangeFromInvalid  = errors.New("invalid from date")
	ErrRangeToInvalid    = errors.New("invalid to date")
	ErrRangeOrderInvalid = errors.New("range ends before it starts")
)

// ParseDayRange reads an inclusive from/to pair. An empty from defaults to
// today and an empty to defaults to from.
func ParseDayRange(rawFrom string, rawTo string, today time.Time) (time.Time, time.Time, error) {
	from := CalendarDay(today)
	if fromRaw := strings.TrimSpace(rawFrom); fromRaw != "" {
		parsed, err := ParseDay(fromRaw)
		if err != nil {
			return time.Time{}, time.Time{}, ErrRangeFromInvalid
		}
		from = parsed
	}

	to := from
	if toRaw := strings.TrimSpace(rawTo); toRaw != "" {
		parsed, err := ParseDay(toRaw)
		if err != nil {
			return time.Time{}, time.Time{}, ErrRangeToInvalid
		}
		to = parsed
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrRangeOrderInvalid
	}
	return from, to, nil
}
