package complaints

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrNoSource is returned when no retrieval backend is configured.
var ErrNoSource = errors.New("no complaint source configured")

// Source delivers a complete snapshot of complaint records.
type Source interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// FileSource reads complaints from JSON array or JSONL files.
// Files are read concurrently; records keep path order.
type FileSource struct {
	Paths    []string
	Location *time.Location
}

func NewFileSource(loc *time.Location, paths ...string) *FileSource {
	return &FileSource{Paths: paths, Location: loc}
}

func (s *FileSource) Fetch(ctx context.Context) ([]Record, error) {
	if len(s.Paths) == 0 {
		return nil, ErrNoSource
	}

	parts := make([][]Record, len(s.Paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range s.Paths {
		g.Go(func() error {
			records, err := readFile(ctx, path, s.Location)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			parts[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Record
	for _, p := range parts {
		all = append(all, p...)
	}
	log.Debug().Int("files", len(s.Paths)).Int("count", len(all)).Msg("Loaded complaints from files")
	return all, nil
}

func readFile(ctx context.Context, path string, loc *time.Location) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadRecords(ctx, file, loc)
}

// ReadRecords decodes either a JSON array of records or one record per line.
// Malformed JSONL lines are skipped with a warning.
func ReadRecords(ctx context.Context, r io.Reader, loc *time.Location) ([]Record, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if first == '[' {
		var raws []json.RawMessage
		if err := json.NewDecoder(br).Decode(&raws); err != nil {
			return nil, fmt.Errorf("failed to decode record array: %w", err)
		}
		records := make([]Record, 0, len(raws))
		for i, raw := range raws {
			rec, err := DecodeRecord(raw, loc)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			records = append(records, rec)
		}
		return records, nil
	}

	var records []Record
	scanner := bufio.NewScanner(br)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if line%1000 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		rec, err := DecodeRecord(data, loc)
		if err != nil {
			log.Warn().Err(err).Int("line", line).Msg("Skipping invalid JSON line")
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading records: %w", err)
	}
	return records, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}

// FallbackSource tries Primary first and falls back to Secondary on error.
type FallbackSource struct {
	Primary   Source
	Secondary Source
}

func (s FallbackSource) Fetch(ctx context.Context) ([]Record, error) {
	records, err := s.Primary.Fetch(ctx)
	if err == nil || s.Secondary == nil {
		return records, err
	}
	log.Warn().Err(err).Msg("Primary complaint source failed, using fallback")
	fallback, ferr := s.Secondary.Fetch(ctx)
	if ferr != nil {
		return nil, errors.Join(err, ferr)
	}
	return fallback, nil
}
