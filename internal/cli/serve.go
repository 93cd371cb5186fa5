package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akorchagin/partnerpulse/internal/config"
	"github.com/akorchagin/partnerpulse/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analytics API server",
	Long: `Start the partner-network analytics API server.

Examples:
  partnerpulse serve                             # Listen on :8080
  PARTNERPULSE_ADDR=:3000 partnerpulse serve     # Custom address
  PARTNERPULSE_DB_DSN=file:pulse.db partnerpulse serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng, err := buildEngine(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer eng.close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("shutting down")
		cancel()
	}()

	server := web.NewServer(web.Options{
		Addr:            cfg.Addr,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Generator:       eng.generator,
		Tracker:         eng.tracker,
		Logger:          log,
	})
	return server.Start(ctx)
}
