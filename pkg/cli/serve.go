package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	httpctrl "github.com/secmon-lab/casebook/pkg/controller/http"
	"github.com/secmon-lab/casebook/pkg/service/worker"
	"github.com/secmon-lab/casebook/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var refreshInterval time.Duration
	e := env{withGemini: true}

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       "127.0.0.1:8080",
			Sources:     cli.EnvVars("CASEBOOK_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "age-refresh-interval",
			Usage:       "Interval of the derived age refresh; 0 disables it",
			Value:       time.Hour,
			Sources:     cli.EnvVars("CASEBOOK_AGE_REFRESH_INTERVAL"),
			Destination: &refreshInterval,
		},
	}
	flags = append(flags, e.flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sess, err := e.open(ctx)
			if err != nil {
				return err
			}
			defer sess.Close(ctx)

			if refreshInterval > 0 {
				ageWorker := worker.NewAgeRefreshWorker(sess.uc.Case, refreshInterval)
				if err := ageWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start age refresh worker")
				}
				defer ageWorker.Stop()
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(sess.uc, httpctrl.WithLocale(sess.locale)),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"storage", e.storage.LogAttrs(),
					"summary", sess.uc.Summary.Enabled(),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
