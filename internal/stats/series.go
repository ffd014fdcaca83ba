package stats

import (
	"time"

	"speakup-analytics/internal/complaints"
)

// Bucket is one period of a trend series.
type Bucket struct {
	Key   string    `json:"key"`
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}

// Series is an ordered sequence of buckets, oldest first.
type Series []Bucket

// Find returns the bucket with the given key.
func (s Series) Find(key string) (Bucket, bool) {
	for _, b := range s {
		if b.Key == key {
			return b, true
		}
	}
	return Bucket{}, false
}

// Keys returns the bucket keys in series order.
func (s Series) Keys() []string {
	keys := make([]string, len(s))
	for i, b := range s {
		keys[i] = b.Key
	}
	return keys
}

// BuildSeries tallies records into the trailing window of periods ending at the
// period containing now. The caller captures now once so that every offset in
// one pass refers to the same instant.
func BuildSeries(records []complaints.Record, r Resolution, now time.Time, loc *time.Location) Series {
	if loc == nil {
		loc = time.Local
	}

	// 1. Lay out the empty window, oldest period first
	n := r.WindowLength()
	series := make(Series, 0, n)
	index := make(map[string]int, n)
	for i := n - 1; i >= 0; i-- {
		start := PeriodStart(periodsBefore(now, r, i, loc), r, loc)
		key := PeriodKey(start, r)
		index[key] = len(series)
		series = append(series, Bucket{
			Key:   key,
			Label: PeriodLabel(start, r),
			Start: start,
		})
	}

	// 2. Tally records falling inside the window
	for _, rec := range records {
		t, ok := rec.SubmittedAt()
		if !ok {
			continue
		}
		if idx, ok := index[PeriodKey(PeriodStart(t, r, loc), r)]; ok {
			series[idx].Count++
		}
	}

	return series
}
