package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/filtering"
	"github.com/jonathan/candidate-ranker/internal/observability"
	"github.com/jonathan/candidate-ranker/internal/ranking"
	intschemas "github.com/jonathan/candidate-ranker/internal/schemas"
	"github.com/jonathan/candidate-ranker/internal/types"
	"github.com/jonathan/candidate-ranker/schemas"
)

type rankOptions struct {
	search  string
	skills  string
	minExp  string
	jobID   string
	limit   int
	out     string
	verbose bool
}

func newRankCmd(root *rootOptions) *cobra.Command {
	opts := &rankOptions{}

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank the candidate pool against criteria or a job description",
		Long: "Ranks candidates by skill match and experience, producing a RankedCandidates JSON sorted by overall score. " +
			"With --job-id the job description's required skills and minimum years are used instead of --q, --skills and --min-exp.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRank(cmd.Context(), root, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.search, "q", "", "Search term matched against name and current company")
	cmd.Flags().StringVarP(&opts.skills, "skills", "s", "", "Comma-separated required skills")
	cmd.Flags().StringVar(&opts.minExp, "min-exp", "", "Minimum years of experience")
	cmd.Flags().StringVarP(&opts.jobID, "job-id", "j", "", "Rank against a stored job description")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Keep only the top N candidates")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Path to output JSON file (default stdout)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	return cmd
}

func runRank(ctx context.Context, root *rootOptions, opts *rankOptions, stdout, stderr io.Writer) error {
	env, err := root.setup(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	printer := observability.NewPrinter(stderr)

	var (
		output []byte
		count  int
	)
	if opts.jobID != "" {
		id, err := uuid.Parse(opts.jobID)
		if err != nil {
			return fmt.Errorf("invalid --job-id %q: %w", opts.jobID, err)
		}

		shortlist, err := env.screening.ScreenForJob(ctx, id, opts.limit)
		if err != nil {
			return fmt.Errorf("failed to rank candidates: %w", err)
		}
		ranked := &types.RankedCandidates{
			Criteria:   filtering.ForJobDescription(&shortlist.JobDescription),
			Candidates: shortlist.Candidates,
			Total:      shortlist.PoolSize,
		}
		if opts.verbose {
			printer.PrintJobDescription(&shortlist.JobDescription)
			printer.PrintRankedCandidates(ranked)
		}

		output, err = json.MarshalIndent(shortlist, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal shortlist to JSON: %w", err)
		}
		count = len(shortlist.Candidates)

		// The shortlist wraps the ranked list; check the ranked part on its own.
		rankedJSON, err := json.Marshal(ranked)
		if err != nil {
			return fmt.Errorf("failed to marshal ranked candidates to JSON: %w", err)
		}
		warnInvalidOutput(stderr, rankedJSON)
	} else {
		ranked, err := env.screening.Screen(ctx, types.RawCriteria{
			Search:        opts.search,
			Skills:        opts.skills,
			MinExperience: types.LooseString(opts.minExp),
		})
		if err != nil {
			return fmt.Errorf("failed to rank candidates: %w", err)
		}
		if opts.limit > 0 {
			ranked.Candidates = ranking.Top(ranked, opts.limit)
		}
		if opts.verbose {
			printer.PrintCriteria(ranked.Criteria)
			printer.PrintRankedCandidates(ranked)
		}

		output, err = json.MarshalIndent(ranked, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal ranked candidates to JSON: %w", err)
		}
		count = len(ranked.Candidates)

		warnInvalidOutput(stderr, output)
	}

	if opts.out == "" {
		_, err := fmt.Fprintln(stdout, string(output))
		return err
	}

	if err := writeOutput(opts.out, output); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Successfully ranked %d candidates to %s\n", count, opts.out)
	return nil
}

// warnInvalidOutput checks ranked output against its schema. A failure is
// reported but not fatal.
func warnInvalidOutput(stderr io.Writer, ranked []byte) {
	if err := intschemas.ValidateDocument(schemas.RankedCandidates, ranked); err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: Output validation failed: %v\n", err)
	}
}

// writeOutput writes data to path, creating the parent directory if needed.
func writeOutput(path string, data []byte) error {
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
