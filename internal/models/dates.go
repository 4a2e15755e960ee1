package models

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

type dateParser func(interface{}) (time.Time, bool)

// The backend emits issue dates in three encodings: ISO 8601 with a 'T',
// a space-separated date-time, and a numeric array [y, m, d, h?, min?, s?].
// Parsers run in order; the first success wins and exhaustion means the
// record is skipped by the caller.
var issueDateParsers = []dateParser{
	parseDateArray,
	parseISODateTime,
	parseSpacedDateTime,
	parsePlainDate,
}

func ParseIssueDate(v interface{}) (time.Time, bool) {
	for _, parse := range issueDateParsers {
		if ts, ok := parse(v); ok {
			return ts, true
		}
	}
	return time.Time{}, false
}

func parseDateArray(v interface{}) (time.Time, bool) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) < 3 {
		return time.Time{}, false
	}

	year := int(asInt64(arr[0]))
	month := int(asInt64(arr[1]))
	day := int(asInt64(arr[2]))
	hour, minute, second := 0, 0, 0
	if len(arr) > 3 {
		hour = int(asInt64(arr[3]))
	}
	if len(arr) > 4 {
		minute = int(asInt64(arr[4]))
	}
	if len(arr) > 5 {
		second = int(asInt64(arr[5]))
	}

	ts := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	// time.Date normalizes out-of-range components; reject anything that
	// moved, the way a strict constructor would.
	if ts.Year() != year || ts.Month() != time.Month(month) || ts.Day() != day {
		return time.Time{}, false
	}
	return ts, true
}

func parseISODateTime(v interface{}) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || !strings.Contains(s, "T") {
		return time.Time{}, false
	}
	return parseDatePart(strings.SplitN(s, "T", 2)[0])
}

func parseSpacedDateTime(v interface{}) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || !strings.Contains(s, " ") {
		return time.Time{}, false
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return time.Time{}, false
	}
	return parseDatePart(fields[0])
}

func parsePlainDate(v interface{}) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	return parseDatePart(s)
}

func parseDatePart(s string) (time.Time, bool) {
	ts, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
