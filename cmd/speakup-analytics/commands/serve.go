package commands

import (
	"context"
	"os"
	"time"

	"speakup-analytics/internal/api"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	serveAddr         string
	serveOpen         bool
	serveOrigins      []string
	serveRefreshEvery time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.HTTPAddr
		}

		loadSnapshot(cmd.Context())
		server := api.NewServer(addr, api.NewHandler(store, analyzer, selection), serveOrigins)

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			return server.Run(ctx)
		})
		if serveRefreshEvery > 0 {
			g.Go(func() error {
				refreshLoop(ctx, serveRefreshEvery)
				return nil
			})
		}
		if serveOpen {
			// Keep stdout free for command output
			browser.Stdout = os.Stderr
			url := "http://" + addr + "/api/v1/dashboard"
			if err := browser.OpenURL(url); err != nil {
				log.Warn().Err(err).Str("url", url).Msg("Failed to open browser")
			}
		}
		return g.Wait()
	},
}

// refreshLoop refreshes the snapshot on a fixed interval until ctx is done.
func refreshLoop(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Errors are logged by the store; the previous snapshot stays current
			_, _ = store.Refresh(ctx)
		}
	}
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from HTTP_ADDR)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the dashboard endpoint in a browser")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "cors-origin", nil, "allowed CORS origins (default any)")
	serveCmd.Flags().DurationVar(&serveRefreshEvery, "refresh-every", 0, "refresh the snapshot on this interval (0 disables)")
}
