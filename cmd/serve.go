package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"ollamadash/routes"
	"ollamadash/services"
)

const shutdownTimeout = 10 * time.Second

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Start the dashboard",
		Args:    cobra.NoArgs,
		RunE:    serveHandler,
	}

	cmd.Flags().Int("port", 0, "Port to listen on (overrides PORT)")

	return cmd
}

func serveHandler(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	setupLogging(cfg.Debug)

	client, err := services.NewInferenceClient(cfg)
	if err != nil {
		return err
	}

	store := services.NewMemoryStore(cfg.SessionTTL)
	chat := services.NewConversationService(client, store)

	router, err := routes.SetupRouter(cfg, client, chat)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return store.Run(ctx, min(cfg.SessionTTL, 10*time.Minute))
	})

	g.Go(func() error {
		slog.Info("server starting", "addr", srv.Addr, "upstream", cfg.UpstreamURL, "style", cfg.UpstreamStyle, "gate", cfg.GatePolicy)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
