package commands

import (
	"context"

	"speakup-analytics/internal/complaints"
	"speakup-analytics/internal/config"

	"github.com/rs/zerolog/log"
)

// buildSource picks the primary source from configuration and backs it with the
// JSONL cache. Postgres wins over snapshot files; with neither, only the cache is read.
// The returned func releases source resources.
func buildSource(ctx context.Context, cfg *config.AppConfig) (complaints.Source, func(), error) {
	cache := &complaints.Cache{Dir: cfg.CacheDir, Location: cfg.Location}
	closer := func() {}

	var primary complaints.Source
	switch {
	case cfg.Postgres.URL != "":
		pg, err := complaints.OpenPG(ctx, cfg.Postgres)
		if err != nil {
			return nil, closer, err
		}
		primary, closer = pg, pg.Close
		log.Info().Msg("Using Postgres complaint source")
	case len(cfg.SnapshotPaths) > 0:
		primary = complaints.NewFileSource(cfg.Location, cfg.SnapshotPaths...)
		log.Info().Strs("paths", cfg.SnapshotPaths).Msg("Using snapshot file complaint source")
	default:
		log.Warn().Str("cache", cache.Path()).Msg("No complaint source configured, reading cached snapshot only")
		return cache, closer, nil
	}

	return complaints.FallbackSource{
		Primary:   complaints.CachingSource{Source: primary, Cache: cache},
		Secondary: cache,
	}, closer, nil
}
