package stats

import (
	"fmt"
	"strings"
	"time"
)

// Resolution is the calendar granularity of a trend series.
type Resolution int

const (
	Week Resolution = iota
	Month
	Year
)

// Resolutions lists every resolution in display order.
var Resolutions = []Resolution{Week, Month, Year}

func (r Resolution) String() string {
	switch r {
	case Month:
		return "month"
	case Year:
		return "year"
	default:
		return "week"
	}
}

// WindowLength returns the number of trailing periods kept for the resolution.
func (r Resolution) WindowLength() int {
	switch r {
	case Year:
		return 5
	default: // week, month
		return 6
	}
}

// Title returns the tab title shown for the resolution (e.g., "Weekly").
func (r Resolution) Title() string {
	switch r {
	case Month:
		return "Monthly"
	case Year:
		return "Yearly"
	default:
		return "Weekly"
	}
}

// Description summarizes the trailing window (e.g., "Last 6 weeks").
func (r Resolution) Description() string {
	return fmt.Sprintf("Last %d %ss", r.WindowLength(), r.String())
}

// MarshalText encodes the resolution as its lower-case name.
func (r Resolution) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts "week", "month" or "year" in any case.
func (r *Resolution) UnmarshalText(text []byte) error {
	parsed, err := ParseResolution(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseResolution parses a resolution name. Aliases like "weekly" are accepted.
func ParseResolution(s string) (Resolution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week", "weekly":
		return Week, nil
	case "month", "monthly":
		return Month, nil
	case "year", "yearly":
		return Year, nil
	default:
		return Week, fmt.Errorf("unknown resolution %q: expected week, month or year", s)
	}
}

// PeriodStart normalizes a timestamp to the first instant of its period in loc.
// Weeks start on Sunday.
func PeriodStart(t time.Time, r Resolution, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	switch r {
	case Month:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, loc)
	default: // week
		return time.Date(t.Year(), t.Month(), t.Day()-int(t.Weekday()), 0, 0, 0, 0, loc)
	}
}

// PeriodLabel returns a human-readable label for a period start
// (e.g., "Week of Mar 3", "Mar 2024" or "2024").
func PeriodLabel(start time.Time, r Resolution) string {
	switch r {
	case Month:
		return start.Format("Jan 2006")
	case Year:
		return start.Format("2006")
	default:
		return "Week of " + start.Format("Jan 2")
	}
}

// PeriodKey identifies a period uniquely across resolutions.
// The instant is rendered in UTC with millisecond precision.
func PeriodKey(start time.Time, r Resolution) string {
	return r.String() + ":" + start.UTC().Format("2006-01-02T15:04:05.000Z")
}

// periodsBefore returns the reference instant i whole periods before now.
// Months and years are pinned to their first day so that short months never overflow.
func periodsBefore(now time.Time, r Resolution, i int, loc *time.Location) time.Time {
	now = now.In(loc)
	switch r {
	case Month:
		return time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(now.Year()-i, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(now.Year(), now.Month(), now.Day()-7*i, 0, 0, 0, 0, loc)
	}
}
