package mcp

import (
	"context"
	"fmt"
	"time"

	"speakup-analytics/internal/stats"
	"speakup-analytics/internal/visuals"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// SelectionResult describes the selection after a state-changing tool call.
type SelectionResult struct {
	Selection stats.SelectionView  `json:"selection"`
	Trend     stats.TrendView      `json:"trend"`
	Focused   *stats.FocusedPeriod `json:"focused,omitempty"`
}

// RefreshResult describes a freshly fetched snapshot.
type RefreshResult struct {
	Records   int       `json:"records"`
	FetchedAt time.Time `json:"fetchedAt"`
}

func (s *Server) handleAnalyze(ctx context.Context, _ *sdk.CallToolRequest, args AnalyzeArgs) (*sdk.CallToolResult, any, error) {
	var insights []string

	if args.Refresh {
		if _, err := s.store.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("Snapshot refresh failed, analyzing previous snapshot")
			insights = append(insights, fmt.Sprintf("Refresh failed (%v); results use the previous snapshot.", err))
		}
	}

	// Overrides apply to this call only and never touch the shared selection
	view := s.selection.View()
	if args.Resolution != "" {
		r, err := stats.ParseResolution(args.Resolution)
		if err != nil {
			return errorResult(err), nil, nil
		}
		if r != view.Resolution {
			view = stats.SelectionView{Resolution: r}
		}
	}
	if args.Focus != "" {
		view.FocusedKey = args.Focus
	}

	snap := s.store.Snapshot()
	d := s.analyzer.Analyze(snap.Records, view)

	if len(snap.Records) == 0 {
		insights = append(insights, "The snapshot is empty. Call refresh_snapshot to load complaints.")
	}
	if args.Focus != "" && (d.Focused == nil || !d.Focused.Explicit) {
		insights = append(insights, fmt.Sprintf("Period %q is outside the current %s window; the most recent period is focused instead.", args.Focus, view.Resolution))
	}

	return s.result(d, insights, visuals.GenerateDashboardCharts(d)), nil, nil
}

func (s *Server) handleSelectResolution(_ context.Context, _ *sdk.CallToolRequest, args SelectResolutionArgs) (*sdk.CallToolResult, any, error) {
	r, err := stats.ParseResolution(args.Resolution)
	if err != nil {
		return errorResult(err), nil, nil
	}
	s.selection.SelectResolution(r)
	log.Info().Str("resolution", r.String()).Msg("Resolution selected")

	res := s.selectionResult()
	return s.result(res, nil, []string{visuals.GenerateTrendChart(res.Trend)}), nil, nil
}

func (s *Server) handleFocusPeriod(_ context.Context, _ *sdk.CallToolRequest, args FocusPeriodArgs) (*sdk.CallToolResult, any, error) {
	active := s.selection.Resolution()
	series := s.analyzer.Series(s.store.Snapshot().Records, active)
	if !s.selection.FocusPeriod(args.Key, series) {
		return errorResult(fmt.Errorf("period %q is not part of the current %s window (valid keys: %v)", args.Key, active, series.Keys())), nil, nil
	}
	log.Debug().Str("key", args.Key).Msg("Period focused")

	return s.result(s.selectionResult(), nil, nil), nil, nil
}

func (s *Server) handleRefresh(ctx context.Context, _ *sdk.CallToolRequest, _ RefreshArgs) (*sdk.CallToolResult, any, error) {
	snap, err := s.store.Refresh(ctx)
	if err != nil {
		return errorResult(fmt.Errorf("refresh failed: %w", err)), nil, nil
	}
	return s.result(RefreshResult{Records: len(snap.Records), FetchedAt: snap.FetchedAt}, nil, nil), nil, nil
}

func (s *Server) selectionResult() SelectionResult {
	d := s.analyzer.Analyze(s.store.Snapshot().Records, s.selection.View())
	return SelectionResult{
		Selection: d.Selection,
		Trend:     d.Active(),
		Focused:   d.Focused,
	}
}
