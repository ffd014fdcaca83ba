package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"speakup-analytics/internal/complaints"
	"speakup-analytics/internal/config"
	"speakup-analytics/internal/logging"
	"speakup-analytics/internal/mcp"
	"speakup-analytics/internal/stats"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	store       *complaints.Store
	analyzer    stats.Analyzer
	selection   *stats.Selection
	closeSource = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "speakup-analytics",
	Short: "Complaint analytics for the SpeakUp dashboard",
	Long: `Aggregates complaint records into the SpeakUp dashboard: status and urgency distributions,
top categories, daily volume and weekly, monthly and yearly trends.

Without a subcommand the analytics are served to MCP clients over stdio.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// File logging problems are reported by Init and never fatal
		_ = logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		source, closer, err := buildSource(cmd.Context(), cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure complaint source")
		}
		closeSource = closer

		store = complaints.NewStore(source)
		analyzer = stats.Analyzer{Location: cfg.Location, CategoryLimit: cfg.CategoryLimit}
		selection = stats.NewSelection(stats.Week)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("timezone", cfg.Location.String()).
			Msg("speakup-analytics starting")
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeSource()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCP(cmd.Context())
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the analytics to MCP clients over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCP(cmd.Context())
	},
}

func runMCP(ctx context.Context) error {
	loadSnapshot(ctx)
	return mcp.NewServer(store, analyzer, selection, cfg.EnableMermaidCharts, Version).Serve(ctx)
}

// loadSnapshot performs the initial fetch. A failure leaves an empty snapshot
// that can be refreshed later.
func loadSnapshot(ctx context.Context) {
	if _, err := store.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("Initial snapshot unavailable, starting empty")
	}
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(mcpCmd, reportCmd, serveCmd)
}
