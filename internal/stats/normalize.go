package stats

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status is the canonical lifecycle state of a complaint.
type Status int

const (
	Pending Status = iota
	InProgress
	Resolved
	Closed
)

// Statuses lists every status in display order.
var Statuses = []Status{Pending, InProgress, Resolved, Closed}

// Key returns the stable identifier used in JSON payloads.
func (s Status) Key() string {
	switch s {
	case InProgress:
		return "inProgress"
	case Resolved:
		return "resolved"
	case Closed:
		return "closed"
	default:
		return "pending"
	}
}

// Label returns the human-readable name of the status.
func (s Status) Label() string {
	switch s {
	case InProgress:
		return "In Progress"
	case Resolved:
		return "Resolved"
	case Closed:
		return "Closed"
	default:
		return "Pending"
	}
}

// Color returns the chart color associated with the status.
func (s Status) Color() string {
	switch s {
	case InProgress:
		return "#3b82f6"
	case Resolved:
		return "#16a34a"
	case Closed:
		return "#6b7280"
	default:
		return "#f97316"
	}
}

func (s Status) String() string { return s.Key() }

// Urgency is the canonical priority of a complaint.
type Urgency int

const (
	High Urgency = iota
	Medium
	Low
)

// Urgencies lists every urgency in display order.
var Urgencies = []Urgency{High, Medium, Low}

func (u Urgency) Key() string {
	switch u {
	case Medium:
		return "medium"
	case Low:
		return "low"
	default:
		return "high"
	}
}

func (u Urgency) Label() string {
	switch u {
	case Medium:
		return "Medium"
	case Low:
		return "Low"
	default:
		return "High"
	}
}

func (u Urgency) Color() string {
	switch u {
	case Medium:
		return "#facc15"
	case Low:
		return "#22c55e"
	default:
		return "#dc2626"
	}
}

func (u Urgency) String() string { return u.Key() }

// UncategorizedLabel is used for records without a usable category.
const UncategorizedLabel = "Uncategorized"

var lower = cases.Lower(language.Und)

// NormalizeStatus maps free-text status to a Status.
// Matching is by substring in priority order; anything unrecognized is Pending.
func NormalizeStatus(raw string) Status {
	value := lower.String(raw)
	switch {
	case strings.Contains(value, "progress"):
		return InProgress
	case strings.Contains(value, "pending"):
		return Pending
	case strings.Contains(value, "resolve"):
		return Resolved
	case strings.Contains(value, "close"):
		return Closed
	default:
		return Pending
	}
}

// NormalizeUrgency maps free-text urgency to an Urgency.
// The boolean is false when no level is recognized; such records are not counted.
func NormalizeUrgency(raw string) (Urgency, bool) {
	value := lower.String(raw)
	switch {
	case strings.Contains(value, "high"):
		return High, true
	case strings.Contains(value, "medium"):
		return Medium, true
	case strings.Contains(value, "low"):
		return Low, true
	default:
		return 0, false
	}
}

// NormalizeCategory turns hyphens and underscores into spaces, collapses whitespace and trims.
func NormalizeCategory(raw *string) string {
	if raw == nil {
		return UncategorizedLabel
	}
	value := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, *raw)
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return UncategorizedLabel
	}
	return value
}
