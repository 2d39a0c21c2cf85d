package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"stay/config"
	"stay/di"
	"stay/helper"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const stopTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			withScheduler, _ := cmd.Flags().GetBool("with-scheduler")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg := config.Get(); cfg.DB.Postgres.AutoMigrate {
				if err := helper.Up(cfg); err != nil {
					return fmt.Errorf("auto migrate: %w", err)
				}
			}

			app := di.InitializeApp()
			defer flush(app)

			g, ctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				return app.HTTP.Serve(ctx)
			})

			if withScheduler {
				g.Go(func() error {
					return runScheduler(ctx, app)
				})
			}

			return g.Wait()
		},
	}

	cmd.Flags().Bool("with-scheduler", true, "also run the job scheduler in this process")

	return cmd
}

func workerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run only the job scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app := di.InitializeApp()
			defer flush(app)

			return runScheduler(ctx, app)
		},
	}
}

// runScheduler blocks until ctx ends, then waits for the in-flight batch.
func runScheduler(ctx context.Context, app *di.App) error {
	if err := app.Worker.Register(ctx, app.Config.Booking.ExpirySweepCron); err != nil {
		return err
	}

	if err := app.Scheduler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	<-ctx.Done()

	log.Info().Msg("Stopping scheduler.")

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	return app.Scheduler.Stop(stopCtx)
}

func flush(app *di.App) {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if err := app.Otel.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to flush traces")
	}
}
