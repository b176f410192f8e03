package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-integrations/internal/adapters/driving/api"
	"github.com/custodia-labs/sercha-integrations/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-integrations/internal/logger"
)

// purgeInterval is how often expired records are swept from stores that
// do not expire keys themselves.
const purgeInterval = time.Minute

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP integration service",
	Long: `Start the HTTP service exposing the integration endpoints:

  GET /integrations/{provider}/authorize?user_id=&org_id=
  GET /integrations/{provider}/oauth2callback?code=&state=
  GET /integrations/{provider}/credentials?user_id=&org_id=
  GET /integrations/{provider}/items?user_id=&org_id=
  GET /healthz

The listen address defaults to server.addr from the config file
(SERCHA_SERVER_ADDR), or :8000.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := initServices(ctx); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	addr := settings.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	if expiring, ok := credentialStore.(driven.ExpiringStore); ok {
		go purgeExpired(ctx, expiring, purgeInterval)
	}

	handler := api.NewHandler(oauthService, itemService, settings.Server.FrontendOrigin)
	router := api.NewRouter(api.RouterConfig{
		FrontendOrigin: settings.Server.FrontendOrigin,
		RateLimitRPS:   settings.Server.RateLimitRPS,
		RateLimitBurst: settings.Server.RateLimitBurst,
	}, handler)

	logger.Info("credential store: %s", settings.Store.Driver)
	return api.NewServer(router).Run(ctx, addr)
}

// purgeExpired sweeps store every interval until ctx is done.
func purgeExpired(ctx context.Context, store driven.ExpiringStore, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purgeOnce(ctx, store)
		}
	}
}

func purgeOnce(ctx context.Context, store driven.ExpiringStore) {
	n, err := store.PurgeExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("purging expired records: %v", err)
		}
		return
	}
	if n == 0 {
		return
	}
	if sized, ok := store.(interface{ Len() int }); ok {
		logger.Debug("purged %d expired records, %d remain", n, sized.Len())
		return
	}
	logger.Debug("purged %d expired records", n)
}
