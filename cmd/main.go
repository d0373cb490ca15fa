package main

import (
	"context"
	"log/slog"
	"os"

	"tillpoint/cmd/bootstrap"
	"tillpoint/internal/handler/middleware"
	"tillpoint/internal/infra/store"
	"tillpoint/internal/pkg/config"
	"tillpoint/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Fail safe: never expose debug output unless explicitly asked for
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			gin.EnableJsonDecoderDisallowUnknownFields()
			listenAddr := ":" + cfg.Server.Port
			logger.Info("Starting server", "address", listenAddr, "mode", gin.Mode())
			go func() {
				if err := engine.Run(listenAddr); err != nil {
					logger.Error("Server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info("Stopping server")
			return nil
		},
	})
}

// resumeOpenOrders restarts the idle clock for drafts recovered from the
// journal, so an operator can pick up where the terminal left off.
func resumeOpenOrders(lc fx.Lifecycle, coordinator *commands.TransactionCoordinator) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return coordinator.ResumeOpenOrders(ctx)
		},
	})
}

func startSweeper(lc fx.Lifecycle, sweeper *commands.Sweeper) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go sweeper.Run(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}

// startSnapshotter runs the periodic saver and takes a final snapshot on
// shutdown so the next start replays as little of the journal as possible.
func startSnapshotter(lc fx.Lifecycle, snapshotter *store.Snapshotter, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go snapshotter.Run(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			if err := snapshotter.Save(); err != nil {
				logger.Error("Final snapshot failed", "error", err)
				return err
			}
			return nil
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.Module,
		fx.Provide(
			func(cfg config.Config) *slog.Logger {
				logger := middleware.NewLogger(cfg.Log)
				return logger.GetSlogLogger()
			},
			func() *gin.Engine {
				return gin.New()
			},
		),
		fx.Invoke(
			resumeOpenOrders,
			startSweeper,
			startSnapshotter,
			startServer,
		),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("Application failed to start", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("Application failed to stop cleanly", "error", err)
	}

	slog.Info("Application stopped")
}
