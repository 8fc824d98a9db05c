package badge

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/imagematrix/matrix-cli/config"
	internalbadge "github.com/imagematrix/matrix-cli/internal/badge"
	cerrors "github.com/imagematrix/matrix-cli/util/common/errors"
)

// NewCommand wires up:
//
//	matrix badge
func NewCommand() *cobra.Command {
	var coverageFile string

	cmd := &cobra.Command{
		Use:   "badge",
		Short: "Publish the coverage badge to its gist",
		Long: heredoc.Doc(`
			Reads the Cobertura coverage report, rounds the line coverage to
			a whole percentage, and writes a shields.io endpoint document
			into the configured gist file. Intended to run on pushes to the
			main branch only; the pipeline gates the invocation.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Global.Badge.GistID == "" || config.Global.Badge.GistFile == "" {
				return fmt.Errorf("%w: --gist-id and --gist-file are required",
					cerrors.ErrInvalidArgument)
			}

			percent, err := internalbadge.CoverageFromFile(coverageFile)
			if err != nil {
				return err
			}

			b := internalbadge.New(config.Global.Badge.Label, percent)

			client := internalbadge.NewGistClient(config.Global.APIBaseURL, config.Global.Token)
			if err := client.UpdateBadge(cmd.Context(),
				config.Global.Badge.GistID, config.Global.Badge.GistFile, b); err != nil {
				return err
			}

			log.Info().
				Str("coverage", b.Message).
				Str("color", b.Color).
				Str("gist", config.Global.Badge.GistID).
				Msg("badge published")
			return nil
		},
	}

	cmd.Flags().StringVar(&coverageFile, "coverage-file", "coverage.xml",
		"Cobertura XML file to read the line coverage from")
	cmd.Flags().StringVar(&config.Global.Badge.GistID, "gist-id", "",
		"identifier of the gist hosting the badge")
	cmd.Flags().StringVar(&config.Global.Badge.GistFile, "gist-file", "",
		"filename inside the gist to update")
	cmd.Flags().StringVar(&config.Global.Badge.Label, "label", "coverage",
		"badge label")

	return cmd
}
