package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/schemas"
	schemafiles "github.com/jonathan/candidate-ranker/schemas"
)

var schemaNames = map[string]string{
	"candidate_pool":    schemafiles.CandidatePool,
	"ranked_candidates": schemafiles.RankedCandidates,
}

func newValidateCmd() *cobra.Command {
	var schemaName, schemaFile string

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a JSON file against a schema",
		Long: "Validates a candidate pool or ranking output against the built-in schemas, " +
			"or against any schema file given with --schema-file.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], schemaName, schemaFile, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&schemaName, "schema", "candidate_pool", "Built-in schema: candidate_pool or ranked_candidates")
	cmd.Flags().StringVar(&schemaFile, "schema-file", "", "Path to a JSON Schema file (overrides --schema)")

	return cmd
}

func runValidate(path, schemaName, schemaFile string, stdout io.Writer) error {
	if schemaFile != "" {
		if err := schemas.ValidateJSON(schemaFile, path); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "%s is valid against %s\n", path, schemaFile)
		return nil
	}

	name, ok := schemaNames[schemaName]
	if !ok {
		return fmt.Errorf("unknown --schema %q: must be candidate_pool or ranked_candidates", schemaName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := schemas.ValidateDocument(name, data); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(stdout, "%s is a valid %s\n", path, schemaName)
	return nil
}
