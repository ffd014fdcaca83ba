package visuals

import (
	"fmt"
	"math"
	"strings"

	"speakup-analytics/internal/stats"
)

// GenerateTrendChart creates a Mermaid bar chart for one resolution's complaint volume.
func GenerateTrendChart(view stats.TrendView) string {
	if len(view.Series) == 0 {
		return ""
	}

	var labels []string
	var values []string
	for _, b := range view.Series {
		labels = append(labels, quote(b.Label))
		values = append(values, fmt.Sprintf("%d", b.Count))
	}

	title := view.Title
	if view.Description != "" {
		title = fmt.Sprintf("%s (%s)", view.Title, view.Description)
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %s\n", quote("Complaint Volume: "+title)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Complaints\" 0 --> %d\n", yAxisMax(view.MaxCount)))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateDistributionChart creates a Mermaid bar chart for a status or urgency distribution.
func GenerateDistributionChart(title string, entries []stats.DistributionEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0
	for _, e := range entries {
		labels = append(labels, quote(e.Label))
		values = append(values, fmt.Sprintf("%d", e.Count))
		if e.Count > maxVal {
			maxVal = e.Count
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title %s\n", quote(title)))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Complaints\" 0 --> %d\n", yAxisMax(maxVal)))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateCategoryPie creates a Mermaid pie chart of the top categories.
func GenerateCategoryPie(categories []stats.CategoryEntry) string {
	if len(categories) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("pie showData\n")
	sb.WriteString("    title \"Top Categories\"\n")
	for _, c := range categories {
		sb.WriteString(fmt.Sprintf("    %s : %d\n", quote(c.Label), c.Count))
	}
	sb.WriteString("```")
	return sb.String()
}

// GenerateDashboardCharts renders the active trend followed by the distributions.
func GenerateDashboardCharts(d stats.Dashboard) []string {
	var charts []string
	for _, c := range []string{
		GenerateTrendChart(d.Active()),
		GenerateDistributionChart("Status Distribution", d.Statuses),
		GenerateDistributionChart("Urgency Distribution", d.Urgencies),
		GenerateCategoryPie(d.TopCategories),
	} {
		if c != "" {
			charts = append(charts, c)
		}
	}
	return charts
}

// yAxisMax leaves headroom above the tallest bar.
func yAxisMax(maxVal int) int {
	return maxVal + int(math.Max(1, math.Ceil(float64(maxVal)*0.2)))
}

// Mermaid has no escape for double quotes inside labels.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "'") + `"`
}
