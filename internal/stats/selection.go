package stats

import "sync"

// Selection holds the dashboard's active resolution and an optional explicitly
// focused period. The zero value selects Week with no focus.
type Selection struct {
	mu         sync.RWMutex
	resolution Resolution
	focusedKey string
}

// SelectionView is an immutable copy of a Selection.
type SelectionView struct {
	Resolution Resolution `json:"resolution"`
	FocusedKey string     `json:"focusedKey,omitempty"`
}

// NewSelection creates a selection on the given resolution.
func NewSelection(r Resolution) *Selection {
	return &Selection{resolution: r}
}

// Resolution returns the active resolution.
func (s *Selection) Resolution() Resolution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolution
}

// View returns a consistent copy of both fields.
func (s *Selection) View() SelectionView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SelectionView{Resolution: s.resolution, FocusedKey: s.focusedKey}
}

// SelectResolution switches resolution. An explicit focus never survives the switch.
func (s *Selection) SelectResolution(r Resolution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolution = r
	s.focusedKey = ""
}

// FocusPeriod focuses key if it belongs to series, which must be the active
// resolution's series. It reports whether the focus changed.
func (s *Selection) FocusPeriod(key string, series Series) bool {
	if _, ok := series.Find(key); !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focusedKey = key
	return true
}

// CurrentFocusedPeriod returns the explicitly focused bucket when present in
// series, otherwise the most recent bucket. It is false only for an empty series.
func (s *Selection) CurrentFocusedPeriod(series Series) (Bucket, bool) {
	return s.View().Focused(series)
}

// Focused applies the focus rule to series.
func (v SelectionView) Focused(series Series) (Bucket, bool) {
	if len(series) == 0 {
		return Bucket{}, false
	}
	if v.FocusedKey != "" {
		if b, ok := series.Find(v.FocusedKey); ok {
			return b, true
		}
	}
	return series[len(series)-1], true
}
