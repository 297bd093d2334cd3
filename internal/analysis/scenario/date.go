package scenario

import (
	"regexp"
	"strconv"
	"time"

	"scenario-parser/internal/models"
)

// dateRule is one date shape. Groups are year, month, day and optionally
// hour and minute; fixedMinute applies when the shape spells the minute
// with a word (半 = :30).
type dateRule struct {
	name        string
	re          *regexp.Regexp
	fixedMinute int
}

const (
	datePart    = `(\d{4})\s*年\s*(\d{1,2})\s*月\s*(\d{1,2})\s*日`
	weekdayPart = `(?:\s*\([^)]{1,3}\))?\s*`
)

// dateRules are tried in order, most specific first.
var dateRules = []dateRule{
	{name: "datetime", re: regexp.MustCompile(datePart + weekdayPart + `(\d{1,2})\s*時\s*(\d{1,2})\s*分`), fixedMinute: -1},
	{name: "datetime_half", re: regexp.MustCompile(datePart + weekdayPart + `(\d{1,2})\s*時半`), fixedMinute: 30},
	// 時 followed by 間 is a duration such as 4時間足, not a clock hour.
	{name: "date_hour", re: regexp.MustCompile(datePart + weekdayPart + `(\d{1,2})\s*時(?:[^間]|$)`), fixedMinute: -1},
	{name: "date", re: regexp.MustCompile(datePart), fixedMinute: -1},
	{name: "numeric", re: numericDate, fixedMinute: -1},
}

var numericDate = regexp.MustCompile(`\b(\d{4})[/.-](\d{1,2})[/.-](\d{1,2})(?:\s+(\d{1,2}):(\d{2}))?`)

// calendarDates match the calendar part of every date shape, plus the
// clock of a numeric date, whose digits carry no unit suffix.
var calendarDates = []*regexp.Regexp{regexp.MustCompile(datePart), numericDate}

// dateSpans returns every date expression in normalized text, valid or
// not, so that its numerals are not read as prices.
func dateSpans(text string) []span {
	var out []span
	for _, re := range calendarDates {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			out = append(out, span{loc[0], loc[1]})
		}
	}
	return out
}

// resolveDate returns the analysis timestamp written in normalized text,
// or nil. Within a rule the first in-range occurrence wins; a rule whose
// occurrences are all out of range yields to the next one.
func resolveDate(text string) *models.LocalTime {
	for _, rule := range dateRules {
		for _, m := range rule.re.FindAllStringSubmatch(text, -1) {
			if t, ok := rule.build(m); ok {
				return &t
			}
		}
	}
	return nil
}

func (r dateRule) build(m []string) (models.LocalTime, bool) {
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, minute := 0, 0
	if len(m) > 4 && m[4] != "" {
		hour, _ = strconv.Atoi(m[4])
	}
	if len(m) > 5 && m[5] != "" {
		minute, _ = strconv.Atoi(m[5])
	}
	if r.fixedMinute >= 0 {
		minute = r.fixedMinute
	}
	if !validDate(year, month, day) || !validClock(hour, minute) {
		return models.LocalTime{}, false
	}
	return models.Date(year, time.Month(month), day, hour, minute), true
}

func validDate(year, month, day int) bool {
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	// time.Date normalizes overflow, so Feb 30 comes back as March.
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Day() == day
}

func validClock(hour, minute int) bool {
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59
}
