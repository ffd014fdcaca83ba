package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"speakup-analytics/internal/stats"
	"speakup-analytics/internal/visuals"

	"github.com/spf13/cobra"
)

var (
	reportResolution string
	reportFocus      string
	reportMermaid    bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard for the current snapshot",
	Example: `  speakup-analytics report --resolution month
  speakup-analytics report --mermaid > dashboard.md`,
	RunE: func(cmd *cobra.Command, args []string) error {
		view := stats.SelectionView{Resolution: stats.Week, FocusedKey: reportFocus}
		if reportResolution != "" {
			r, err := stats.ParseResolution(reportResolution)
			if err != nil {
				return err
			}
			view.Resolution = r
		}

		loadSnapshot(cmd.Context())
		d := analyzer.Analyze(store.Snapshot().Records, view)
		return writeReport(cmd.OutOrStdout(), d, reportMermaid)
	},
}

// writeReport renders d as indented JSON, or as a Markdown document of Mermaid charts.
func writeReport(w io.Writer, d stats.Dashboard, mermaid bool) error {
	if !mermaid {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}

	var sb strings.Builder
	sb.WriteString("# Complaint Dashboard\n\n")
	sb.WriteString(fmt.Sprintf("Generated %s (%s)\n\n", d.GeneratedAt.Format("Jan 2, 2006 15:04"), d.Timezone))
	sb.WriteString(fmt.Sprintf("- Total complaints: %d\n", d.KPIs.TotalComplaints))
	sb.WriteString(fmt.Sprintf("- Open: %d\n", d.KPIs.OpenComplaints))
	sb.WriteString(fmt.Sprintf("- Last 7 days: %d (avg %d/day)\n", d.KPIs.LastSevenDays, d.KPIs.AvgPerDay))
	if d.Focused != nil {
		sb.WriteString(fmt.Sprintf("- Focused period: %s, %d complaints (%d%% of window)\n", d.Focused.Label, d.Focused.Count, d.Focused.PercentOfTotal))
	}
	for _, chart := range visuals.GenerateDashboardCharts(d) {
		sb.WriteString("\n")
		sb.WriteString(chart)
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func init() {
	reportCmd.Flags().StringVarP(&reportResolution, "resolution", "r", "", "trend resolution: week, month or year (default week)")
	reportCmd.Flags().StringVar(&reportFocus, "focus", "", "period key to highlight")
	reportCmd.Flags().BoolVar(&reportMermaid, "mermaid", false, "render Markdown with Mermaid charts instead of JSON")
}
