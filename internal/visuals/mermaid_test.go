package visuals

import (
	"strings"
	"testing"

	"speakup-analytics/internal/stats"
)

func TestGenerateTrendChart(t *testing.T) {
	view := stats.TrendView{
		Resolution:  stats.Week,
		Title:       "Weekly",
		Description: "Last 6 weeks",
		Series: stats.Series{
			{Key: "week:a", Label: "Week of Mar 3", Count: 2},
			{Key: "week:b", Label: "Week of Mar 10", Count: 5},
		},
		MaxCount: 5,
	}

	chart := GenerateTrendChart(view)

	for _, want := range []string{
		"xychart-beta",
		`title "Complaint Volume: Weekly (Last 6 weeks)"`,
		`x-axis ["Week of Mar 3", "Week of Mar 10"]`,
		`y-axis "Complaints" 0 --> 6`,
		"bar [2, 5]",
	} {
		if !strings.Contains(chart, want) {
			t.Errorf("Expected chart to contain %q, got:\n%s", want, chart)
		}
	}
}

func TestGenerateTrendChart_Empty(t *testing.T) {
	if got := GenerateTrendChart(stats.TrendView{}); got != "" {
		t.Errorf("Expected empty chart, got %q", got)
	}
}

func TestGenerateCategoryPie(t *testing.T) {
	chart := GenerateCategoryPie([]stats.CategoryEntry{
		{Label: "billing", Count: 3},
		{Label: `say "hi"`, Count: 1},
	})

	if !strings.HasPrefix(chart, "```mermaid\npie showData\n") {
		t.Errorf("unexpected header:\n%s", chart)
	}
	if !strings.Contains(chart, `"billing" : 3`) {
		t.Errorf("missing billing slice:\n%s", chart)
	}
	if !strings.Contains(chart, `"say 'hi'" : 1`) {
		t.Errorf("Expected quotes to be replaced:\n%s", chart)
	}
}

func TestYAxisMax(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 1},
		{1, 2},
		{5, 6},
		{10, 12},
		{11, 14},
	}
	for _, tt := range tests {
		if got := yAxisMax(tt.in); got != tt.want {
			t.Errorf("yAxisMax(%d): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestGenerateDashboardCharts_SkipsEmpty(t *testing.T) {
	d := stats.Dashboard{
		Statuses: []stats.DistributionEntry{{Key: "pending", Label: "Pending", Count: 1}},
	}
	charts := GenerateDashboardCharts(d)
	if len(charts) != 1 {
		t.Fatalf("Expected only the status chart, got %d charts", len(charts))
	}
	if !strings.Contains(charts[0], "Status Distribution") {
		t.Errorf("unexpected chart: %s", charts[0])
	}
}
