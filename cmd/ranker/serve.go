package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/server"
	"github.com/jonathan/candidate-ranker/internal/server/ratelimit"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var origins []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes candidate ranking, job description and analytics endpoints.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), root, origins)
		},
	}

	cmd.Flags().Int("port", 8080, "Port to listen on")
	cmd.Flags().StringSliceVar(&origins, "allowed-origin", nil, "CORS allowed origin (repeatable, default any)")
	root.bind(cmd.Flags(), "port", "port")

	return cmd
}

func runServe(ctx context.Context, root *rootOptions, origins []string) error {
	env, err := root.setup(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Port:           env.cfg.Port,
		RateLimit:      ratelimit.FromConfig(env.cfg.RateLimit),
		AllowedOrigins: origins,
	}, env.screening, env.analytics, env.log)

	return srv.Start(ctx)
}
