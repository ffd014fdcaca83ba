package complaints

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestCache_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	cache := &Cache{Dir: tmpDir, Name: "test-board", Location: time.UTC}

	category := "Billing"
	submitted := time.Date(2024, 3, 13, 10, 15, 0, 0, time.UTC)
	records := []Record{
		{ID: "C-1", Status: "Pending", Category: &category, SubmissionDate: Timestamp{Seconds: submitted.Unix()}},
		{ID: "C-2", Status: "closed"},
	}

	// Save
	if err := cache.Save(records); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Verify file exists and temp file is gone
	if _, err := os.Stat(cache.Path()); os.IsNotExist(err) {
		t.Errorf("Cache file does not exist: %s", cache.Path())
	}
	if _, err := os.Stat(cache.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("Temp file left behind")
	}

	// Load
	loaded, err := cache.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(loaded))
	}
	if loaded[0].ID != "C-1" || *loaded[0].Category != "Billing" {
		t.Errorf("unexpected first record: %+v", loaded[0])
	}
	got, ok := loaded[0].SubmittedAt()
	if !ok || !got.Equal(submitted) {
		t.Errorf("Expected submission %v, got %v", submitted, got)
	}
	if _, ok := loaded[1].SubmittedAt(); ok {
		t.Error("Expected missing date to stay missing")
	}
}

func TestCache_Missing(t *testing.T) {
	cache := &Cache{Dir: t.TempDir()}
	if _, err := cache.Fetch(context.Background()); !errors.Is(err, ErrNoSource) {
		t.Errorf("Expected ErrNoSource, got %v", err)
	}
}

func TestCachingSource(t *testing.T) {
	cache := &Cache{Dir: t.TempDir()}
	src := &stubSource{records: []Record{{ID: "live", Status: "pending"}}}

	if _, err := (CachingSource{Source: src, Cache: cache}).Fetch(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := cache.Fetch(context.Background())
	if err != nil || len(loaded) != 1 || loaded[0].ID != "live" {
		t.Errorf("Expected cached live record, got %+v, %v", loaded, err)
	}
}
