package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"speakup-analytics/internal/complaints"
	"speakup-analytics/internal/stats"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Handler serves the dashboard over HTTP.
type Handler struct {
	store     *complaints.Store
	analyzer  stats.Analyzer
	selection *stats.Selection
}

// NewHandler creates a handler sharing the given selection with other front ends.
func NewHandler(store *complaints.Store, analyzer stats.Analyzer, selection *stats.Selection) *Handler {
	if selection == nil {
		selection = stats.NewSelection(stats.Week)
	}
	return &Handler{store: store, analyzer: analyzer, selection: selection}
}

// Routes mounts every endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", h.health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard", h.dashboard)
		r.Get("/series/{resolution}", h.series)
		r.Get("/distributions", h.distributions)
		r.Put("/selection", h.updateSelection)
		r.Post("/snapshot/refresh", h.refresh)
	})
}

type dashboardQuery struct {
	Resolution string `json:"resolution" validate:"omitempty,resolution"`
	Focus      string `json:"focus" validate:"omitempty,max=64"`
}

type selectionRequest struct {
	Resolution *string `json:"resolution" validate:"omitempty,resolution"`
	Focus      *string `json:"focus" validate:"omitempty,max=64"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Records   int       `json:"records"`
	FetchedAt time.Time `json:"fetchedAt"`
}

type distributionsResponse struct {
	KPIs          stats.KPIs                `json:"kpis"`
	Statuses      []stats.DistributionEntry `json:"statuses"`
	Urgencies     []stats.DistributionEntry `json:"urgencies"`
	TopCategories []stats.CategoryEntry     `json:"topCategories"`
	DailyVolume   stats.Series              `json:"dailyVolume"`
}

type selectionResponse struct {
	Selection stats.SelectionView  `json:"selection"`
	Trend     stats.TrendView      `json:"trend"`
	Focused   *stats.FocusedPeriod `json:"focused,omitempty"`
}

type refreshResponse struct {
	Records   int       `json:"records"`
	FetchedAt time.Time `json:"fetchedAt"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Records: len(snap.Records), FetchedAt: snap.FetchedAt})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	q := dashboardQuery{
		Resolution: r.URL.Query().Get("resolution"),
		Focus:      r.URL.Query().Get("focus"),
	}
	if err := validateStruct(q); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// Query overrides apply to this request only
	view := h.selection.View()
	if q.Resolution != "" {
		res, _ := stats.ParseResolution(q.Resolution)
		if res != view.Resolution {
			view = stats.SelectionView{Resolution: res}
		}
	}
	if q.Focus != "" {
		view.FocusedKey = q.Focus
	}

	writeJSON(w, http.StatusOK, h.analyzer.Analyze(h.store.Snapshot().Records, view))
}

func (h *Handler) series(w http.ResponseWriter, r *http.Request) {
	res, err := stats.ParseResolution(chi.URLParam(r, "resolution"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, h.analyzer.Trend(h.store.Snapshot().Records, res))
}

func (h *Handler) distributions(w http.ResponseWriter, r *http.Request) {
	d := h.analyzer.Analyze(h.store.Snapshot().Records, h.selection.View())
	writeJSON(w, http.StatusOK, distributionsResponse{
		KPIs:          d.KPIs,
		Statuses:      d.Statuses,
		Urgencies:     d.Urgencies,
		TopCategories: d.TopCategories,
		DailyVolume:   d.DailyVolume,
	})
}

func (h *Handler) updateSelection(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[selectionRequest](r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// 1. Resolve the target resolution without touching shared state
	target := h.selection.Resolution()
	if req.Resolution != nil {
		target, _ = stats.ParseResolution(*req.Resolution)
	}

	// 2. Check the focus key against the target window before mutating anything
	records := h.store.Snapshot().Records
	var series stats.Series
	if req.Focus != nil {
		series = h.analyzer.Series(records, target)
		if _, ok := series.Find(*req.Focus); !ok {
			writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("period %q is not part of the current %s window", *req.Focus, target))
			return
		}
	}

	// 3. Apply
	if req.Resolution != nil {
		h.selection.SelectResolution(target)
	}
	if req.Focus != nil {
		h.selection.FocusPeriod(*req.Focus, series)
	}

	d := h.analyzer.Analyze(records, h.selection.View())
	log.Info().Str("resolution", d.Selection.Resolution.String()).Str("focus", d.Selection.FocusedKey).Msg("Selection updated")
	writeJSON(w, http.StatusOK, selectionResponse{
		Selection: d.Selection,
		Trend:     d.Active(),
		Focused:   d.Focused,
	})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.Refresh(r.Context())
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, complaints.ErrNoSource) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Records: len(snap.Records), FetchedAt: snap.FetchedAt})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
