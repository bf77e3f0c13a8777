package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/mwestlake/chordstand/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the song library HTTP API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openLibrary()
	if err != nil {
		return err
	}
	defer db.Close()

	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		cfg.Port = port
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(repo, r.logger, cfg)
	return srv.Start(ctx)
}
