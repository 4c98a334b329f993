package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexops-lab/dealdesk/pkg/cli/config"
	controller "github.com/lexops-lab/dealdesk/pkg/controller/http"
	"github.com/lexops-lab/dealdesk/pkg/domain/interfaces"
	"github.com/lexops-lab/dealdesk/pkg/repository"
	"github.com/lexops-lab/dealdesk/pkg/usecase"
	"github.com/lexops-lab/dealdesk/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		postgresCfg  config.Postgres
		firestoreCfg config.Firestore
		cacheCfg     config.Cache
		coverageCfg  config.Coverage
	)

	flags := joinFlags(
		serverCfg.Flags(),
		postgresCfg.Flags(),
		firestoreCfg.Flags(),
		cacheCfg.Flags(),
		coverageCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting dealdesk server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("postgres", postgresCfg),
				slog.Any("firestore", firestoreCfg),
				slog.Any("cache", cacheCfg),
				slog.Any("coverage", coverageCfg),
			)

			repo, err := configureRepository(ctx, &postgresCfg, &firestoreCfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			dashCache, err := cacheCfg.Configure(ctx)
			if err != nil {
				return err
			}

			coverage, err := coverageCfg.Configure(ctx)
			if err != nil {
				return err
			}

			dashboardUC := usecase.NewDashboard(repo, dashCache, coverage,
				usecase.WithCacheTTL(cacheCfg.TTL),
			)

			// Warm the default dashboard so the first browser hit lands on
			// a cached payload.
			async.Dispatch(ctx, func(ctx context.Context) error {
				if _, err := dashboardUC.GetDashboard(ctx, usecase.AnonymousIdentity, usecase.DefaultWindowDays); err != nil {
					return goerr.Wrap(err, "failed to warm dashboard cache")
				}
				return nil
			})

			server := controller.NewServer(ctx, serverCfg.Addr, dashboardUC)

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

// configureRepository resolves the storage backend. Postgres wins when a DSN
// is given, then Firestore, then the in-memory store.
func configureRepository(ctx context.Context, pg *config.Postgres, fs *config.Firestore) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	if pg.IsConfigured() {
		return pg.Configure(ctx)
	}

	if fs.IsConfigured() {
		return fs.Configure(ctx)
	}

	logger.Warn("Using memory database instead of postgres or firestore. The data will be removed when shutting down")
	return repository.NewMemory(), nil
}
