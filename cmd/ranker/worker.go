package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/worker"
)

func newWorkerCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume ranking requests from RabbitMQ",
		Long:  "Starts a pool of workers that rank candidates for each request on the queue and reply to its reply-to queue.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWorker(cmd.Context(), root)
		},
	}

	cmd.Flags().String("amqp-url", "", "RabbitMQ URL (default $RANKER_AMQP_URL)")
	cmd.Flags().String("queue", "ranking.requests", "Queue to consume")
	cmd.Flags().Int("workers", 2, "Number of concurrent workers")
	cmd.Flags().Int("prefetch", 10, "Unacknowledged messages per channel")
	root.bind(cmd.Flags(), "amqp.url", "amqp-url")
	root.bind(cmd.Flags(), "amqp.queue", "queue")
	root.bind(cmd.Flags(), "amqp.workers", "workers")
	root.bind(cmd.Flags(), "amqp.prefetch", "prefetch")

	return cmd
}

func runWorker(ctx context.Context, root *rootOptions) error {
	env, err := root.setup(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	if env.cfg.AMQP.URL == "" {
		return errors.New("amqp url is required: set --amqp-url or RANKER_AMQP_URL")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := worker.New(worker.Config{
		URL:      env.cfg.AMQP.URL,
		Queue:    env.cfg.AMQP.Queue,
		Workers:  env.cfg.AMQP.Workers,
		Prefetch: env.cfg.AMQP.Prefetch,
	}, env.screening, env.log)

	return consumer.Run(ctx)
}
