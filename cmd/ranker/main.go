// Package main provides the entry point for the candidate ranker CLI and services.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jonathan/candidate-ranker/internal/config"
)

// rootOptions carries state shared by every subcommand.
type rootOptions struct {
	configFile string
	v          *viper.Viper
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: config.NewViper()}

	cmd := &cobra.Command{
		Use:           "ranker",
		Short:         "Candidate ranking and skill-gap scoring",
		Long:          "Ranks a candidate pool against recruiter criteria or job descriptions, over HTTP, AMQP or the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "", "Path to a YAML or JSON config file")
	pf.String("candidates-file", "", "Read candidates from a JSON pool file instead of the database")
	pf.String("database-url", "", "PostgreSQL connection string (default $DATABASE_URL)")
	pf.Bool("debug", false, "Enable debug logging")
	pf.Bool("json", false, "Emit logs as JSON")

	opts.bind(pf, "candidates_file", "candidates-file")
	opts.bind(pf, "database_url", "database-url")
	opts.bind(pf, "debug", "debug")
	opts.bind(pf, "log_json", "json")

	cmd.AddCommand(
		newServeCmd(opts),
		newRankCmd(opts),
		newStatsCmd(opts),
		newWorkerCmd(opts),
		newValidateCmd(),
	)
	return cmd
}

// bind ties a config key to a flag so an explicitly set flag overrides file and env values.
func (o *rootOptions) bind(flags *pflag.FlagSet, key, flag string) {
	if err := o.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
		panic(fmt.Sprintf("failed to bind %s flag: %v", flag, err))
	}
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
