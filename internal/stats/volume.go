package stats

import (
	"math"
	"time"

	"speakup-analytics/internal/complaints"
)

// DailyVolumeDays is the number of calendar days covered by DailyVolume.
const DailyVolumeDays = 7

// DailyVolume counts submissions for each of the last seven calendar days, today last.
// Keys are local dates (2006-01-02), labels are short weekday names.
func DailyVolume(records []complaints.Record, now time.Time, loc *time.Location) Series {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	days := make(Series, 0, DailyVolumeDays)
	index := make(map[string]int, DailyVolumeDays)
	for i := DailyVolumeDays - 1; i >= 0; i-- {
		day := time.Date(now.Year(), now.Month(), now.Day()-i, 0, 0, 0, 0, loc)
		key := day.Format("2006-01-02")
		index[key] = len(days)
		days = append(days, Bucket{Key: key, Label: day.Format("Mon"), Start: day})
	}

	for _, r := range records {
		t, ok := r.SubmittedAt()
		if !ok {
			continue
		}
		if idx, ok := index[t.In(loc).Format("2006-01-02")]; ok {
			days[idx].Count++
		}
	}
	return days
}

// KPIs are the headline figures of the dashboard.
type KPIs struct {
	TotalComplaints int `json:"totalComplaints"`
	OpenComplaints  int `json:"openComplaints"`
	LastSevenDays   int `json:"lastSevenDays"`
	AvgPerDay       int `json:"avgPerDay"`
}

// ComputeKPIs derives the headline figures from the status tally and daily volume.
func ComputeKPIs(total int, statuses StatusCounts, daily Series) KPIs {
	week := Total(daily)
	avg := 0
	if len(daily) > 0 {
		avg = int(math.Round(float64(week) / float64(len(daily))))
	}
	return KPIs{
		TotalComplaints: total,
		OpenComplaints:  statuses.Open(),
		LastSevenDays:   week,
		AvgPerDay:       avg,
	}
}
