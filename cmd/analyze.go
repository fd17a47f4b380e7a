package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/credexa/credexa-cli/internal/analyzer"
	"github.com/credexa/credexa-cli/internal/export"
	"github.com/credexa/credexa-cli/internal/flow"
	"github.com/credexa/credexa-cli/internal/intake"
	"github.com/credexa/credexa-cli/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Submit a resume and a job description and print the match report",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

// analyzeOptions are the per-run flags of the analyze command.
type analyzeOptions struct {
	Output string
	Raw    bool
	Color  bool
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "path to the resume pdf")
	analyzeCmd.Flags().String("jd", "", "job description text")
	analyzeCmd.Flags().String("jd-file", "", "file with the job description, - for stdin")
	analyzeCmd.Flags().StringP("output", "o", "", "save the report to a .json or .xlsx file")
	analyzeCmd.Flags().Bool("raw", false, "print the service response instead of the report")
}

func analyze(cmd *cobra.Command) {
	logger, config := setup()

	flags := cmd.Flags()
	resume, _ := flags.GetString("resume")
	jdText, _ := flags.GetString("jd")
	jdFile, _ := flags.GetString("jd-file")
	output, _ := flags.GetString("output")
	raw, _ := flags.GetBool("raw")

	jd, err := intake.ReadJobDescription(jdText, jdFile, os.Stdin)
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	client := newAnalyzer(context.Background(), config, logger)
	logger.Debug("using analysis service", zap.String("endpoint", client.Endpoint()))

	controller := flow.New(client, logger)

	err = runAnalyze(controller, intake.Input{ResumePath: resume, JobDescription: jd}, analyzeOptions{
		Output: output,
		Raw:    raw,
		Color:  colorEnabled(),
	}, os.Stdout, logger)

	var reqErr *analyzer.RequestError
	switch {
	case errors.As(err, &reqErr):
		fmt.Fprintln(os.Stderr, failureNotice)
		os.Exit(1)
	case err != nil:
		logger.Fatal("analysis not submitted", zap.Error(err))
	}
}

// runAnalyze submits the input, prints the outcome and saves it when an output
// path is set.
func runAnalyze(controller *flow.Controller, in intake.Input, opts analyzeOptions, out io.Writer, logger *zap.Logger) error {
	result, err := controller.Submit(in)
	if err != nil {
		return err
	}

	if opts.Raw {
		pretty, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		fmt.Fprintln(out, string(pretty))
	}

	rep, err := controller.Report()
	if err != nil {
		return err
	}

	if !opts.Raw {
		report.NewPrinter(out, opts.Color).Print(rep)
	}

	if opts.Output != "" {
		if err := export.Write(rep, opts.Output); err != nil {
			return fmt.Errorf("saving report: %w", err)
		}
		logger.Info("report saved", zap.String("path", opts.Output))
	}

	return nil
}
