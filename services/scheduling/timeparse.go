package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SlotDuration is the assumed appointment length.
const SlotDuration = 30 * time.Minute

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseTimeText turns a caller's requested time into a concrete start time.
// ISO-8601 forms are tried first; otherwise the "<weekday> at <hour> AM/PM"
// spoken form resolves to the next occurrence of that weekday after now.
func ParseTimeText(timeText string, now time.Time) (time.Time, error) {
	text := strings.TrimSpace(timeText)
	if text == "" {
		return time.Time{}, fmt.Errorf("empty time expression")
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, text, now.Location()); err == nil {
			return t, nil
		}
	}

	lower := strings.ToLower(text)
	dayPart, clockPart, found := strings.Cut(lower, " at ")
	if !found {
		return time.Time{}, fmt.Errorf("unrecognized time expression %q", timeText)
	}

	day, ok := weekdays[strings.TrimSpace(dayPart)]
	if !ok {
		return time.Time{}, fmt.Errorf("unrecognized weekday %q", strings.TrimSpace(dayPart))
	}

	hour, err := parseClock(strings.TrimSpace(clockPart))
	if err != nil {
		return time.Time{}, err
	}

	daysAhead := (int(day) - int(now.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	target := now.AddDate(0, 0, daysAhead)
	return time.Date(target.Year(), target.Month(), target.Day(), hour, 0, 0, 0, now.Location()), nil
}

// parseClock accepts "2 pm", "2pm", "11 am" and plain "14" forms.
func parseClock(s string) (int, error) {
	pm := strings.Contains(s, "pm")
	am := strings.Contains(s, "am")
	digits := strings.TrimSpace(strings.NewReplacer("pm", "", "am", "", ".", "").Replace(s))

	hour, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("unrecognized clock time %q", s)
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("hour %d out of range", hour)
	}
	if pm && hour < 12 {
		hour += 12
	}
	if am && hour == 12 {
		hour = 0
	}
	return hour, nil
}
