package stats

import (
	"reflect"
	"testing"
	"time"

	"speakup-analytics/internal/complaints"
)

// testNow is Wednesday, March 13 2024, 15:30 at UTC-5.
var testNow = time.Date(2024, 3, 13, 15, 30, 0, 0, testLoc)

func submitted(t time.Time) complaints.Record {
	return complaints.Record{ID: t.String(), Status: "pending", SubmissionDate: complaints.EpochMillis(t.UnixMilli())}
}

func TestBuildSeries_Shape(t *testing.T) {
	for _, r := range Resolutions {
		t.Run(r.String(), func(t *testing.T) {
			series := BuildSeries(nil, r, testNow, testLoc)
			if len(series) != r.WindowLength() {
				t.Fatalf("Expected %d buckets, got %d", r.WindowLength(), len(series))
			}

			seen := make(map[string]bool)
			for i, b := range series {
				if seen[b.Key] {
					t.Errorf("duplicate key %s", b.Key)
				}
				seen[b.Key] = true
				if b.Count != 0 {
					t.Errorf("Expected empty bucket, got %d", b.Count)
				}
				if i > 0 && !series[i-1].Start.Before(b.Start) {
					t.Errorf("buckets not ascending at %d: %v >= %v", i, series[i-1].Start, b.Start)
				}
			}

			last := series[len(series)-1]
			if !last.Start.Equal(PeriodStart(testNow, r, testLoc)) {
				t.Errorf("Expected last bucket to contain now, got %v", last.Start)
			}
		})
	}
}

func TestBuildSeries_Labels(t *testing.T) {
	weeks := BuildSeries(nil, Week, testNow, testLoc)
	expectedWeeks := []string{"Week of Feb 4", "Week of Feb 11", "Week of Feb 18", "Week of Feb 25", "Week of Mar 3", "Week of Mar 10"}
	for i, b := range weeks {
		if b.Label != expectedWeeks[i] {
			t.Errorf("week %d: expected %q, got %q", i, expectedWeeks[i], b.Label)
		}
	}

	months := BuildSeries(nil, Month, testNow, testLoc)
	expectedMonths := []string{"Oct 2023", "Nov 2023", "Dec 2023", "Jan 2024", "Feb 2024", "Mar 2024"}
	for i, b := range months {
		if b.Label != expectedMonths[i] {
			t.Errorf("month %d: expected %q, got %q", i, expectedMonths[i], b.Label)
		}
	}

	years := BuildSeries(nil, Year, testNow, testLoc)
	expectedYears := []string{"2020", "2021", "2022", "2023", "2024"}
	for i, b := range years {
		if b.Label != expectedYears[i] {
			t.Errorf("year %d: expected %q, got %q", i, expectedYears[i], b.Label)
		}
	}
}

func TestBuildSeries_MonthEnd(t *testing.T) {
	// Day 31 must not overflow into the following month when stepping back
	now := time.Date(2024, 5, 31, 12, 0, 0, 0, testLoc)
	months := BuildSeries(nil, Month, now, testLoc)
	expected := []string{"Dec 2023", "Jan 2024", "Feb 2024", "Mar 2024", "Apr 2024", "May 2024"}
	for i, b := range months {
		if b.Label != expected[i] {
			t.Errorf("month %d: expected %q, got %q", i, expected[i], b.Label)
		}
	}
}

func TestBuildSeries_Tally(t *testing.T) {
	records := []complaints.Record{
		submitted(testNow),                     // this week
		submitted(testNow.AddDate(0, 0, -3)),   // Sunday, this week
		submitted(testNow.AddDate(0, 0, -4)),   // Saturday, previous week
		submitted(testNow.AddDate(0, 0, -7*5)), // oldest week in window
		submitted(testNow.AddDate(0, 0, -7*6)), // outside the window
		submitted(testNow.AddDate(-10, 0, 0)),  // far outside
		{ID: "no-date", Status: "pending"},     // absent date
		{ID: "bad-date", SubmissionDate: complaints.DateString{Value: "not a date"}},
	}

	weeks := BuildSeries(records, Week, testNow, testLoc)
	counts := make([]int, len(weeks))
	for i, b := range weeks {
		counts[i] = b.Count
	}
	expected := []int{1, 0, 0, 0, 1, 2}
	if !reflect.DeepEqual(counts, expected) {
		t.Errorf("Expected week counts %v, got %v", expected, counts)
	}

	if Total(weeks) >= len(records) {
		t.Errorf("Expected out-of-window records to be excluded, total %d", Total(weeks))
	}

	years := BuildSeries(records, Year, testNow, testLoc)
	if years[4].Count != 5 {
		t.Errorf("Expected 5 records in 2024, got %d", years[4].Count)
	}
	if Total(years) != 5 {
		t.Errorf("Expected 5 records across years, got %d", Total(years))
	}
}

func TestBuildSeries_Idempotent(t *testing.T) {
	records := []complaints.Record{
		submitted(testNow.AddDate(0, -1, 0)),
		submitted(testNow.AddDate(0, -2, 3)),
		submitted(testNow),
	}
	for _, r := range Resolutions {
		first := BuildSeries(records, r, testNow, testLoc)
		second := BuildSeries(records, r, testNow, testLoc)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("%s: repeated builds differ:\n%v\n%v", r, first, second)
		}
	}
}

func TestSeries_FindAndKeys(t *testing.T) {
	series := BuildSeries(nil, Year, testNow, testLoc)
	keys := series.Keys()
	if len(keys) != 5 {
		t.Fatalf("Expected 5 keys, got %d", len(keys))
	}
	b, ok := series.Find(keys[2])
	if !ok || b.Label != "2022" {
		t.Errorf("Find returned %v, %v", b, ok)
	}
	if _, ok := series.Find("year:missing"); ok {
		t.Error("expected missing key to be absent")
	}
}
