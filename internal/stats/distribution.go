package stats

import (
	"slices"

	"speakup-analytics/internal/complaints"

	"golang.org/x/text/cases"
)

// DefaultCategoryLimit is the number of categories kept by TopCategories.
const DefaultCategoryLimit = 5

// StatusCounts tallies complaints per canonical status.
type StatusCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Closed     int `json:"closed"`
}

// Get returns the count for a status.
func (c StatusCounts) Get(s Status) int {
	switch s {
	case InProgress:
		return c.InProgress
	case Resolved:
		return c.Resolved
	case Closed:
		return c.Closed
	default:
		return c.Pending
	}
}

func (c *StatusCounts) inc(s Status) {
	switch s {
	case InProgress:
		c.InProgress++
	case Resolved:
		c.Resolved++
	case Closed:
		c.Closed++
	default:
		c.Pending++
	}
}

// Total returns the sum over all statuses.
func (c StatusCounts) Total() int {
	return c.Pending + c.InProgress + c.Resolved + c.Closed
}

// Open returns complaints that still need attention (pending or in progress).
func (c StatusCounts) Open() int {
	return c.Pending + c.InProgress
}

// UrgencyCounts tallies complaints per recognized urgency.
type UrgencyCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

func (c UrgencyCounts) Get(u Urgency) int {
	switch u {
	case Medium:
		return c.Medium
	case Low:
		return c.Low
	default:
		return c.High
	}
}

func (c *UrgencyCounts) inc(u Urgency) {
	switch u {
	case Medium:
		c.Medium++
	case Low:
		c.Low++
	default:
		c.High++
	}
}

func (c UrgencyCounts) Total() int {
	return c.High + c.Medium + c.Low
}

// CategoryEntry is one row of the category ranking.
type CategoryEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CountStatuses tallies every record under its normalized status.
func CountStatuses(records []complaints.Record) StatusCounts {
	var counts StatusCounts
	for _, r := range records {
		counts.inc(NormalizeStatus(r.Status))
	}
	return counts
}

// CountUrgencies tallies records with a recognized urgency. Others are skipped.
func CountUrgencies(records []complaints.Record) UrgencyCounts {
	var counts UrgencyCounts
	for _, r := range records {
		if r.Urgency == nil {
			continue
		}
		if u, ok := NormalizeUrgency(*r.Urgency); ok {
			counts.inc(u)
		}
	}
	return counts
}

// TopCategories ranks normalized categories by frequency and keeps at most limit entries.
// Spellings differing only in case share one entry labelled with the latest spelling.
// Ties keep first-seen order.
func TopCategories(records []complaints.Record, limit int) []CategoryEntry {
	if limit <= 0 {
		limit = DefaultCategoryLimit
	}

	fold := cases.Fold()
	var entries []CategoryEntry
	index := make(map[string]int)
	for _, r := range records {
		label := NormalizeCategory(r.Category)
		key := fold.String(label)
		if idx, ok := index[key]; ok {
			entries[idx].Count++
			entries[idx].Label = label
			continue
		}
		index[key] = len(entries)
		entries = append(entries, CategoryEntry{Label: label, Count: 1})
	}

	slices.SortStableFunc(entries, func(a, b CategoryEntry) int {
		return b.Count - a.Count
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
