package report

import (
	"encoding/json"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/imagematrix/matrix-cli/config"
	"github.com/imagematrix/matrix-cli/internal/results"
)

// NewCommand wires up:
//
//	matrix report <results.xml ...>
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <results.xml ...>",
		Short: "Aggregate fan-out test results into a pipeline verdict",
		Long: heredoc.Doc(`
			Reads the JUnit XML results file of every fan-out job and prints
			a combined summary. The command exits non-zero when any job had
			failures or errors, naming the counts.

			A listed file that does not exist means that job's test run never
			completed; this is reported as a missing artifact, not as a test
			failure.
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := results.Aggregate(args)
			if err != nil {
				return err
			}

			if config.Global.Format == "json" {
				data, err := json.MarshalIndent(summary, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			} else {
				if err := renderTable(summary); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), summary.Status())
			}

			if summary.Failed() {
				return fmt.Errorf("test run failed: %s", summary.Status())
			}
			return nil
		},
	}

	return cmd
}

func renderTable(summary *results.Summary) error {
	table := pterm.TableData{
		{"Job", "Tests", "Failures", "Errors", "Skipped", "Status"},
	}
	for _, job := range summary.Jobs {
		status := "passed"
		if !job.Passed() {
			status = "failed"
		}
		name := job.Name
		if name == "" {
			name = job.Path
		}
		table = append(table, []string{
			name,
			fmt.Sprint(job.Tests),
			fmt.Sprint(job.Failures),
			fmt.Sprint(job.Errors),
			fmt.Sprint(job.Skipped),
			status,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(table).Render()
}
