package mailscan

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Interview moment extraction is deliberately narrow: a month-name token with
// a day number AND a 12-hour clock token must both appear, or nothing is
// produced. Partial results would schedule garbage.

var (
	reMonthDay = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	reClock12h = regexp.MustCompile(`(?i)\b(\d{1,2})(?::([0-5]\d))?\s*(am|pm)\b`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// InterviewWindowDuration is the assumed length of a scheduled interview.
const InterviewWindowDuration = time.Hour

// ExtractInterviewMoment scans body text for an interview date and time and
// returns a one-hour event window. The year is assumed to be now's calendar
// year. Instants strictly before now are treated as historical noise (old
// mail re-scanned) and discarded.
func ExtractInterviewMoment(body string, now time.Time) (start, end time.Time, ok bool) {
	md := reMonthDay.FindStringSubmatch(body)
	if md == nil {
		return time.Time{}, time.Time{}, false
	}
	clock := reClock12h.FindStringSubmatch(body)
	if clock == nil {
		return time.Time{}, time.Time{}, false
	}

	month, found := monthsByPrefix[strings.ToLower(md[1])]
	if !found {
		return time.Time{}, time.Time{}, false
	}
	day, err := strconv.Atoi(md[2])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, time.Time{}, false
	}

	hour, err := strconv.Atoi(clock[1])
	if err != nil || hour < 1 || hour > 12 {
		return time.Time{}, time.Time{}, false
	}
	minute := 0
	if clock[2] != "" {
		minute, _ = strconv.Atoi(clock[2])
	}

	// 12-hour to 24-hour: midnight is "12am", afternoon hours add 12.
	meridiem := strings.ToLower(clock[3])
	if hour == 12 && meridiem == "am" {
		hour = 0
	} else if hour != 12 && meridiem == "pm" {
		hour += 12
	}

	start = time.Date(now.Year(), month, day, hour, minute, 0, 0, now.Location())
	if start.Before(now) {
		return time.Time{}, time.Time{}, false
	}
	return start, start.Add(InterviewWindowDuration), true
}
