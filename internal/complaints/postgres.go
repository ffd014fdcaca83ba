package complaints

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// PGConfig configures the Postgres complaint source.
type PGConfig struct {
	URL      string
	MaxConns int32
	Timeout  time.Duration
}

// PGSource reads the complaints table through a pgx pool.
type PGSource struct {
	Pool    *pgxpool.Pool
	Timeout time.Duration
}

var newPool = pgxpool.NewWithConfig

// OpenPG connects a pool for the given configuration.
func OpenPG(ctx context.Context, cfg PGConfig) (*PGSource, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres pool: %w", err)
	}
	return &PGSource{Pool: pool, Timeout: cfg.Timeout}, nil
}

// Close closes the pool.
func (s *PGSource) Close() {
	if s != nil && s.Pool != nil {
		s.Pool.Close()
	}
}

const selectComplaints = `
SELECT id, COALESCE(status, ''), urgency, category, submission_date
FROM complaints`

func (s *PGSource) Fetch(ctx context.Context) ([]Record, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	start := time.Now()
	rows, err := s.Pool.Query(ctx, selectComplaints)
	if err != nil {
		return nil, fmt.Errorf("failed to query complaints: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Record, error) {
		var (
			r         Record
			submitted *time.Time
		)
		if err := row.Scan(&r.ID, &r.Status, &r.Urgency, &r.Category, &submitted); err != nil {
			return Record{}, err
		}
		if submitted != nil {
			r.SubmissionDate = Timestamp{Seconds: submitted.Unix(), Nanos: int32(submitted.Nanosecond())}
		}
		return r, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan complaints: %w", err)
	}

	log.Debug().Int("count", len(records)).Dur("elapsed", time.Since(start)).Msg("Loaded complaints from postgres")
	return records, nil
}
