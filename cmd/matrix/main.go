package main

import (
	"fmt"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/imagematrix/matrix-cli/cmd/badge"
	"github.com/imagematrix/matrix-cli/cmd/report"
	"github.com/imagematrix/matrix-cli/cmd/resolve"
	"github.com/imagematrix/matrix-cli/config"
)

var Version = "development"

const defaultRegistryHost = "ghcr.io"

func main() {
	rootCmd := &cobra.Command{
		Use:   "matrix",
		Short: "Container test-matrix tooling for CI pipelines",
		Long: heredoc.Doc(`
			matrix resolves the set of container images a CI test matrix
			fans out over, aggregates the per-image test results, and
			publishes the coverage badge.
		`),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			fileCfg, err := config.LoadFile(config.Global.ConfigPath)
			if err != nil {
				return err
			}
			// flags win over file values
			fileCfg.Apply()

			if config.Global.Token == "" {
				config.Global.Token = os.Getenv("GITHUB_TOKEN")
			}
			if config.Global.RegistryHost == "" {
				config.Global.RegistryHost = defaultRegistryHost
			}

			if config.Global.Debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
	}

	addGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(resolve.NewCommand())
	rootCmd.AddCommand(report.NewCommand())
	rootCmd.AddCommand(badge.NewCommand())

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// addGlobalFlags binds the persistent flags directly to the global config
func addGlobalFlags(flags *pflag.FlagSet) {
	flags.StringVar(&config.Global.Org, "org", "",
		"organization owning the container packages")
	flags.StringVar(&config.Global.Token, "token", "",
		"access token (falls back to GITHUB_TOKEN)")
	flags.StringVar(&config.Global.RegistryHost, "registry", "",
		"container registry host (default \"ghcr.io\")")
	flags.StringVar(&config.Global.APIBaseURL, "api-url", "",
		"base URL for the packages and gist API (defaults to the public endpoint)")
	flags.StringVar(&config.Global.ConfigPath, "config", "",
		"config file (default \".matrix.yaml\" when present)")
	flags.StringVar(&config.Global.Format, "format", "table",
		"output format for report (table or json)")
	flags.BoolVar(&config.Global.Debug, "debug", false,
		"print debug level logs")
}
