package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-bdjobs-e2e/internal/config"
	"go-bdjobs-e2e/internal/logging"
	"go-bdjobs-e2e/internal/portal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "mockportal",
		Short: "Serve the stub bdjobs portal the e2e scenarios run against",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Initialize(cfg.Logger)
			defer logging.Sync()
			log := logging.Named("portal")

			srv, err := portal.Start(addr, portal.NewSeededStore(), log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "portal listening on %s\n", srv.URL)
			fmt.Fprintf(cmd.OutOrStdout(), "run the suite with BASE_URL=%s\n", srv.URL)

			<-cmd.Context().Done()
			log.Info("shutting down", zap.String("url", srv.URL))

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	defaultAddr := "127.0.0.1:8080"
	if port := os.Getenv("PORT"); port != "" {
		defaultAddr = "127.0.0.1:" + port
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", defaultAddr, "address to listen on")
	return cmd
}
