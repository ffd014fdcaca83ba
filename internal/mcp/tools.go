package mcp

import (
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AnalyzeArgs are the inputs of analyze_complaints.
type AnalyzeArgs struct {
	Resolution string `json:"resolution,omitempty" jsonschema:"Trend resolution: week, month or year. Defaults to the current dashboard selection."`
	Focus      string `json:"focus,omitempty" jsonschema:"Period key to highlight. Unknown keys fall back to the most recent period."`
	Refresh    bool   `json:"refresh,omitempty" jsonschema:"Fetch a fresh snapshot from the data source before analyzing."`
}

// SelectResolutionArgs are the inputs of select_resolution.
type SelectResolutionArgs struct {
	Resolution string `json:"resolution" jsonschema:"Trend resolution to select: week, month or year."`
}

// FocusPeriodArgs are the inputs of focus_period.
type FocusPeriodArgs struct {
	Key string `json:"key" jsonschema:"Period key as returned in the series of the selected resolution."`
}

// RefreshArgs are the inputs of refresh_snapshot.
type RefreshArgs struct{}

func (s *Server) registerTools(srv *sdk.Server) error {
	if err := addTool(srv, "analyze_complaints",
		"Build the complaint dashboard from the current snapshot: KPIs, status and urgency distributions, top categories, "+
			"daily volume for the last 7 days and the weekly, monthly and yearly trends with a focused period.\n\n"+
			"Complaints without a parseable submission date are counted in the distributions but never appear in a trend.",
		s.handleAnalyze); err != nil {
		return err
	}
	if err := addTool(srv, "select_resolution",
		"Switch the dashboard's trend resolution. Any explicitly focused period is cleared.",
		s.handleSelectResolution); err != nil {
		return err
	}
	if err := addTool(srv, "focus_period",
		"Highlight one period of the currently selected trend. The key must belong to the current window, otherwise the selection is left unchanged.",
		s.handleFocusPeriod); err != nil {
		return err
	}
	return addTool(srv, "refresh_snapshot",
		"Fetch a fresh complaint snapshot from the configured data source. On failure the previous snapshot is kept.",
		s.handleRefresh)
}
