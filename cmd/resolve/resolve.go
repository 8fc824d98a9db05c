package resolve

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/imagematrix/matrix-cli/config"
	"github.com/imagematrix/matrix-cli/internal/matrix"
	"github.com/imagematrix/matrix-cli/internal/registry/github"
	"github.com/imagematrix/matrix-cli/internal/registry/probe"
)

// NewCommand wires up:
//
//	matrix resolve
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the container test matrix",
		Long: heredoc.Doc(`
			Lists the organization's container packages, drops every image
			whose tag manifest does not resolve against the registry, and
			emits the remaining names as a JSON array for a matrix fan-out.

			Registry errors are fatal: a matrix silently shrunk by a masked
			error would skip test coverage without failing the pipeline.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			lister := github.NewClient(config.Global.APIBaseURL, config.Global.Token)
			prober := probe.NewRemoteProber(config.Global.RegistryHost,
				config.Global.Org, config.Global.Token)

			var bar *pterm.ProgressbarPrinter
			resolver, err := matrix.NewResolver(lister, prober, config.Global.Org,
				matrix.WithTag(config.Global.Resolve.Tag),
				matrix.WithExcludes(config.Global.Resolve.Exclude),
				matrix.WithProbeObserver(func(string, bool) {
					if bar != nil {
						bar.Increment()
					}
				}),
			)
			if err != nil {
				return err
			}

			images, err := resolver.List(ctx)
			if err != nil {
				return err
			}

			if len(images) > 0 && term.IsTerminal(int(os.Stderr.Fd())) {
				bar, _ = pterm.DefaultProgressbar.
					WithTotal(len(images)).
					WithTitle("probing manifests").
					WithWriter(os.Stderr).
					Start()
			}

			resolved, err := resolver.FilterResolvable(ctx, images)
			if bar != nil {
				_, _ = bar.Stop()
			}
			if err != nil {
				return err
			}

			serialized, err := matrix.Serialize(resolved)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), serialized)

			if config.Global.Resolve.OutputFile != "" {
				if err := writeOutput(config.Global.Resolve.OutputFile,
					config.Global.Resolve.OutputName, serialized); err != nil {
					return err
				}
			}

			log.Info().
				Int("listed", len(images)).
				Int("resolved", len(resolved)).
				Msg("matrix resolved")
			return nil
		},
	}

	cmd.Flags().StringVar(&config.Global.Resolve.Tag, "tag", "",
		"tag to probe for each image (default \"latest\")")
	cmd.Flags().StringArrayVar(&config.Global.Resolve.Exclude, "exclude", nil,
		"glob pattern of image names to skip (repeatable)")
	cmd.Flags().StringVar(&config.Global.Resolve.OutputFile, "output", "",
		"file to append the result to in name=value form (e.g. $GITHUB_OUTPUT)")
	cmd.Flags().StringVar(&config.Global.Resolve.OutputName, "output-name", "imagenames",
		"output variable name used with --output")

	return cmd
}

// writeOutput appends a name=value line, the format the fan-out consumer
// reads its step outputs from.
func writeOutput(path, name, value string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening output file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s=%s\n", name, value); err != nil {
		return fmt.Errorf("error writing output file %s: %w", path, err)
	}
	return nil
}
