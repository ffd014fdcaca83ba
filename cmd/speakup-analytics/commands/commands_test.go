package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"speakup-analytics/internal/complaints"
	"speakup-analytics/internal/config"
	"speakup-analytics/internal/stats"
)

func TestBuildSource_FilesWithCache(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "export.jsonl")
	data := `{"id":"1","status":"Pending","submissionDate":"2024-03-12T10:00:00Z"}
{"id":"2","status":"Closed","category":"billing"}
`
	if err := os.WriteFile(snapshot, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := &config.AppConfig{
		CacheDir:      filepath.Join(dir, "cache"),
		SnapshotPaths: []string{snapshot},
		Location:      time.UTC,
	}
	if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
		t.Fatal(err)
	}

	source, closer, err := buildSource(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closer()

	records, err := source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	// The snapshot file disappears; the cache written by the first fetch takes over
	if err := os.Remove(snapshot); err != nil {
		t.Fatal(err)
	}
	records, err = source.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Expected cache fallback, got %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 cached records, got %d", len(records))
	}
}

func TestBuildSource_CacheOnly(t *testing.T) {
	cfg := &config.AppConfig{CacheDir: t.TempDir(), Location: time.UTC}

	source, _, err := buildSource(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := source.(*complaints.Cache); !ok {
		t.Fatalf("Expected cache-only source, got %T", source)
	}
	if _, err := source.Fetch(context.Background()); !errors.Is(err, complaints.ErrNoSource) {
		t.Errorf("Expected ErrNoSource for a missing cache, got %v", err)
	}
}

func TestBuildSource_InvalidPostgresURL(t *testing.T) {
	cfg := &config.AppConfig{
		CacheDir: t.TempDir(),
		Location: time.UTC,
		Postgres: complaints.PGConfig{URL: "postgres://%zz"},
	}
	if _, _, err := buildSource(context.Background(), cfg); err == nil {
		t.Error("Expected error for an unparseable Postgres URL")
	}
}

func testDashboard() stats.Dashboard {
	now := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)
	a := stats.Analyzer{Location: time.UTC}
	category := "Billing"
	records := []complaints.Record{
		{ID: "1", Status: "Pending", Category: &category, SubmissionDate: complaints.Timestamp{Seconds: now.Add(-time.Hour).Unix()}},
	}
	return a.AnalyzeAt(records, stats.SelectionView{Resolution: stats.Week}, now)
}

func TestWriteReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeReport(&buf, testDashboard(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var d stats.Dashboard
	if err := json.Unmarshal(buf.Bytes(), &d); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if d.KPIs.TotalComplaints != 1 || d.Timezone != "UTC" {
		t.Errorf("unexpected dashboard: %+v", d.KPIs)
	}
}

func TestWriteReport_Mermaid(t *testing.T) {
	var buf bytes.Buffer
	if err := writeReport(&buf, testDashboard(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Complaint Dashboard",
		"- Total complaints: 1",
		"- Focused period: Week of Mar 10, 1 complaints (100% of window)",
		"xychart-beta",
		"pie showData",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected report to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRefreshLoop_StopsOnCancel(t *testing.T) {
	src := &countingSource{}
	store = complaints.NewStore(src)
	defer func() { store = nil }()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	refreshLoop(ctx, 10*time.Millisecond)

	if src.calls.Load() == 0 {
		t.Error("Expected at least one refresh")
	}
}

type countingSource struct {
	calls atomic.Int32
}

func (s *countingSource) Fetch(context.Context) ([]complaints.Record, error) {
	s.calls.Add(1)
	return nil, nil
}
