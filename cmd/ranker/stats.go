package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/observability"
)

func newStatsCmd(root *rootOptions) *cobra.Command {
	var (
		top    int
		format string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise the candidate pool",
		Long:  "Prints candidate and job description counts, average experience and the most common skills.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd.Context(), root, top, format, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "Number of top skills to report")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")

	return cmd
}

func runStats(ctx context.Context, root *rootOptions, top int, format string, stdout io.Writer) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid --format %q: must be text or json", format)
	}

	env, err := root.setup(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	stats, err := env.analytics.Dashboard(ctx, top)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	observability.NewPrinter(stdout).PrintPoolStats(stats)
	return nil
}
