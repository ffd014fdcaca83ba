package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"speakup-analytics/internal/complaints"
	"speakup-analytics/internal/stats"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath            string
	LogDir              string
	CacheDir            string
	SnapshotPaths       []string
	Postgres            complaints.PGConfig
	Location            *time.Location
	HTTPAddr            string
	CategoryLimit       int
	EnableMermaidCharts bool
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	cacheDir := filepath.Join(dataPath, "cache")

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", cacheDir).Msg("Failed to create cache directory")
	}

	// 4. Timezone for calendar bucketing
	loc, err := LoadLocation(getEnv("ANALYTICS_TIMEZONE", ""))
	if err != nil {
		return nil, err
	}

	timeoutSecs, _ := strconv.Atoi(getEnv("POSTGRES_TIMEOUT_SECONDS", "30"))
	maxConns, _ := strconv.Atoi(getEnv("POSTGRES_MAX_CONNS", "4"))
	categoryLimit, _ := strconv.Atoi(getEnv("TOP_CATEGORIES_LIMIT", strconv.Itoa(stats.DefaultCategoryLimit)))
	if categoryLimit <= 0 {
		categoryLimit = stats.DefaultCategoryLimit
	}

	cfg := &AppConfig{
		DataPath:      dataPath,
		LogDir:        logDir,
		CacheDir:      cacheDir,
		SnapshotPaths: splitList(getEnv("SNAPSHOT_PATHS", "")),
		Postgres: complaints.PGConfig{
			URL:      getEnv("POSTGRES_URL", ""),
			MaxConns: int32(maxConns),
			Timeout:  time.Duration(timeoutSecs) * time.Second,
		},
		Location:            loc,
		HTTPAddr:            getEnv("HTTP_ADDR", "127.0.0.1:7430"),
		CategoryLimit:       categoryLimit,
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
	}

	return cfg, nil
}

// LoadLocation resolves an IANA timezone name. Empty and "Local" mean the host timezone.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
