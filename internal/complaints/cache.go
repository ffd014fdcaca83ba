package complaints

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// Cache persists the last fetched snapshot as JSONL so that analysis keeps
// working when the primary source is unreachable.
type Cache struct {
	Dir      string
	Name     string
	Location *time.Location
}

// Path returns the cache file location.
func (c *Cache) Path() string {
	name := c.Name
	if name == "" {
		name = "complaints"
	}
	return filepath.Join(c.Dir, name+".jsonl")
}

// Fetch loads the cached snapshot.
func (c *Cache) Fetch(ctx context.Context) ([]Record, error) {
	path := c.Path()
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no cache at %s", ErrNoSource, path)
		}
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	defer file.Close()

	records, err := ReadRecords(ctx, file, c.Location)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Int("count", len(records)).Msg("Loaded complaints from cache")
	return records, nil
}

// Save writes the snapshot to a temporary file and renames it into place.
func (c *Cache) Save(records []Record) error {
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	path := c.Path()
	tmpPath := path + ".tmp"

	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}

	writer := bufio.NewWriter(file)
	for _, r := range records {
		line, err := EncodeRecord(r)
		if err == nil {
			_, err = writer.Write(append(line, '\n'))
		}
		if err != nil {
			file.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("failed to encode record %s: %w", r.ID, err)
		}
	}

	if err := writer.Flush(); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename cache file: %w", err)
	}

	log.Info().Str("path", path).Int("count", len(records)).Msg("Complaint snapshot saved to cache")
	return nil
}

// CachingSource writes every successful fetch of Source to Cache.
type CachingSource struct {
	Source Source
	Cache  *Cache
}

func (s CachingSource) Fetch(ctx context.Context) ([]Record, error) {
	records, err := s.Source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.Save(records); err != nil {
		log.Warn().Err(err).Msg("Failed to update snapshot cache")
	}
	return records, nil
}
