package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/Johannes-Berggren/kiki/internal/health"
	"github.com/Johannes-Berggren/kiki/internal/ui"
)

var flagJSON bool

type statusReport struct {
	Base     string         `json:"base"`
	Branches []health.Entry `json:"branches"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report the health of every local branch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		ctx := cmd.Context()
		analysis, err := s.repo.Analyze(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to analyze branches")
		}

		entries := health.Evaluate(analysis.Branches)
		slices.SortStableFunc(entries, health.Compare)
		report := statusReport{Base: analysis.Base, Branches: entries}

		out := cmd.OutOrStdout()
		if flagJSON {
			return writeJSON(out, report)
		}
		_, err = fmt.Fprint(out, ui.RenderReport(report.Branches, report.Base))
		return err
	},
}

// writeJSON pretty-prints v, colourised when out is a terminal.
func writeJSON(out io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to encode report")
	}

	data = pretty.Pretty(data)
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		data = pretty.Color(data, nil)
	}

	_, err = out.Write(data)
	return err
}

func init() {
	statusCmd.Flags().BoolVar(&flagJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(statusCmd)
}
