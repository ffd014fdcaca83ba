package stats

import (
	"time"

	"speakup-analytics/internal/complaints"
)

// TrendView is one resolution's series together with its ranked summary.
type TrendView struct {
	Resolution  Resolution `json:"resolution"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Series      Series     `json:"series"`
	Summary     Series     `json:"summary"`
	Total       int        `json:"total"`
	MaxCount    int        `json:"maxCount"`
}

// DistributionEntry is one row of a status or urgency distribution.
type DistributionEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
	Count int    `json:"count"`
	Share int    `json:"share"`
}

// FocusedPeriod is the highlighted bucket of the active trend.
type FocusedPeriod struct {
	Bucket
	PercentOfTotal int  `json:"percentOfTotal"`
	Explicit       bool `json:"explicit"`
}

// Dashboard carries every aggregate derived from one snapshot and one reference instant.
type Dashboard struct {
	GeneratedAt   time.Time           `json:"generatedAt"`
	Timezone      string              `json:"timezone"`
	KPIs          KPIs                `json:"kpis"`
	StatusCounts  StatusCounts        `json:"statusCounts"`
	UrgencyCounts UrgencyCounts       `json:"urgencyCounts"`
	Statuses      []DistributionEntry `json:"statuses"`
	Urgencies     []DistributionEntry `json:"urgencies"`
	TopCategories []CategoryEntry     `json:"topCategories"`
	DailyVolume   Series              `json:"dailyVolume"`
	Trends        []TrendView         `json:"trends"`
	Selection     SelectionView       `json:"selection"`
	Focused       *FocusedPeriod      `json:"focused,omitempty"`
}

// Trend returns the view for a resolution.
func (d Dashboard) Trend(r Resolution) TrendView {
	for _, t := range d.Trends {
		if t.Resolution == r {
			return t
		}
	}
	return TrendView{Resolution: r}
}

// Active returns the view for the selected resolution.
func (d Dashboard) Active() TrendView {
	return d.Trend(d.Selection.Resolution)
}

// Analyzer builds dashboards. The zero value uses the local timezone, the
// default category limit and the wall clock.
type Analyzer struct {
	Location      *time.Location
	CategoryLimit int
	Clock         func() time.Time
}

func (a Analyzer) location() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

// Now samples the analyzer's clock once.
func (a Analyzer) Now() time.Time {
	if a.Clock == nil {
		return time.Now()
	}
	return a.Clock()
}

// Analyze builds a dashboard at the current instant.
func (a Analyzer) Analyze(records []complaints.Record, sel SelectionView) Dashboard {
	return a.AnalyzeAt(records, sel, a.Now())
}

// Series builds a single resolution's series at the current instant.
func (a Analyzer) Series(records []complaints.Record, r Resolution) Series {
	return BuildSeries(records, r, a.Now(), a.location())
}

// Trend builds a single resolution's view at the current instant.
func (a Analyzer) Trend(records []complaints.Record, r Resolution) TrendView {
	return newTrendView(a.Series(records, r), r)
}

func newTrendView(series Series, r Resolution) TrendView {
	return TrendView{
		Resolution:  r,
		Title:       r.Title(),
		Description: r.Description(),
		Series:      series,
		Summary:     RankDescending(series),
		Total:       Total(series),
		MaxCount:    MaxCount(series),
	}
}

// AnalyzeAt builds a dashboard against the given reference instant.
func (a Analyzer) AnalyzeAt(records []complaints.Record, sel SelectionView, now time.Time) Dashboard {
	loc := a.location()

	// 1. Unwindowed distributions
	statuses := CountStatuses(records)
	urgencies := CountUrgencies(records)
	daily := DailyVolume(records, now, loc)

	d := Dashboard{
		GeneratedAt:   now,
		Timezone:      loc.String(),
		KPIs:          ComputeKPIs(len(records), statuses, daily),
		StatusCounts:  statuses,
		UrgencyCounts: urgencies,
		TopCategories: TopCategories(records, a.CategoryLimit),
		DailyVolume:   daily,
		Selection:     sel,
	}

	for _, s := range Statuses {
		d.Statuses = append(d.Statuses, DistributionEntry{
			Key:   s.Key(),
			Label: s.Label(),
			Color: s.Color(),
			Count: statuses.Get(s),
			Share: Share(statuses.Get(s), statuses.Total()),
		})
	}
	for _, u := range Urgencies {
		d.Urgencies = append(d.Urgencies, DistributionEntry{
			Key:   u.Key(),
			Label: u.Label(),
			Color: u.Color(),
			Count: urgencies.Get(u),
			Share: Share(urgencies.Get(u), urgencies.Total()),
		})
	}

	// 2. Windowed trends, all against the same instant
	for _, r := range Resolutions {
		d.Trends = append(d.Trends, newTrendView(BuildSeries(records, r, now, loc), r))
	}

	// 3. Focused period of the active trend
	active := d.Active().Series
	if b, ok := sel.Focused(active); ok {
		d.Focused = &FocusedPeriod{
			Bucket:         b,
			PercentOfTotal: PercentOfTotal(b, active),
			Explicit:       b.Key == sel.FocusedKey,
		}
	}

	return d
}
