package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/credexa/credexa-cli/internal/export"
	"github.com/credexa/credexa-cli/internal/flow"
	"github.com/credexa/credexa-cli/internal/intake"
	"github.com/credexa/credexa-cli/internal/report"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptChooseResume = "Choose resume"
	PromptChooseJD     = "Choose job description file"
	PromptTypeJD       = "Type job description"
	PromptAnalyze      = "Analyze"
	PromptShowReport   = "Show report"
	PromptExport       = "Export report"
	PromptDumpReport   = "Dump report to temp file"
	PromptExit         = "Exit"

	defaultExportPath = "report.json"
	progressInterval  = time.Second
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Prompt for a resume and a job description and analyze them",
	Run: func(_ *cobra.Command, _ []string) {
		interactive()
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

type session struct {
	controller *flow.Controller
	logger     *zap.Logger
	out        io.Writer
	color      bool
	input      intake.Input
}

func interactive() {
	logger, config := setup()

	client := newAnalyzer(context.Background(), config, logger)
	s := &session{
		controller: flow.New(client, logger),
		logger:     logger,
		out:        os.Stdout,
		color:      colorEnabled(),
	}

	logger.Info("starting interactive session", zap.String("endpoint", client.Endpoint()))

	if err := s.loop(); err != nil {
		logger.Fatal("interactive session", zap.Error(err))
	}
}

func (s *session) loop() error {
	for {
		menu := promptui.Select{
			Label: s.status(),
			Items: []string{PromptChooseResume, PromptChooseJD, PromptTypeJD, PromptAnalyze, PromptShowReport, PromptExport, PromptDumpReport, PromptExit},
			Size:  8,
		}

		_, choice, err := menu.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}

		switch choice {
		case PromptChooseResume:
			s.chooseResume()
		case PromptChooseJD:
			s.chooseJobDescriptionFile()
		case PromptTypeJD:
			s.typeJobDescription()
		case PromptAnalyze:
			s.analyze()
		case PromptShowReport:
			s.showReport()
		case PromptExport:
			s.export()
		case PromptDumpReport:
			s.dump()
		case PromptExit:
			return nil
		}
	}
}

func (s *session) status() string {
	resume := "no resume"
	if s.input.ResumePath != "" {
		resume = s.input.ResumePath
	}

	jd := "no job description"
	if strings.TrimSpace(s.input.JobDescription) != "" {
		jd = fmt.Sprintf("job description: %d chars", len([]rune(s.input.JobDescription)))
	}

	return fmt.Sprintf("[%s] %s, %s", s.controller.State(), resume, jd)
}

func (s *session) chooseResume() {
	prompt := promptui.Prompt{
		Label:   "Resume PDF path",
		Default: s.input.ResumePath,
		Validate: func(input string) error {
			_, err := os.Stat(strings.TrimSpace(input))
			return err
		},
	}

	path, err := prompt.Run()
	if err != nil {
		return
	}

	s.input.ResumePath = strings.TrimSpace(path)
}

func (s *session) chooseJobDescriptionFile() {
	prompt := promptui.Prompt{
		Label: "Job description file",
		Validate: func(input string) error {
			_, err := os.Stat(strings.TrimSpace(input))
			return err
		},
	}

	path, err := prompt.Run()
	if err != nil {
		return
	}

	jd, err := intake.ReadJobDescription("", strings.TrimSpace(path), nil)
	if err != nil {
		fmt.Fprintf(s.out, "Could not read job description: %s\n", err)
		return
	}

	s.input.JobDescription = jd
}

func (s *session) typeJobDescription() {
	prompt := promptui.Prompt{Label: "Job description"}

	jd, err := prompt.Run()
	if err != nil {
		return
	}

	s.input.JobDescription = jd
}

func (s *session) analyze() {
	if !s.input.Ready() {
		fmt.Fprintf(s.out, "Cannot analyze yet: %s\n", s.input.Validate())
		return
	}

	done, err := s.controller.SubmitAsync(s.input)
	if err != nil {
		fmt.Fprintf(s.out, "Cannot analyze yet: %s\n", err)
		return
	}

	outcome := waitWithProgress(s.out, done, progressInterval)
	if outcome.State == flow.Failed {
		fmt.Fprintln(s.out, failureNotice)
		return
	}

	s.showReport()
}

func (s *session) showReport() {
	rep, err := s.controller.Report()
	if err != nil {
		fmt.Fprintln(s.out, "No report yet. Choose a resume and a job description, then analyze.")
		return
	}

	report.NewPrinter(s.out, s.color).Print(rep)
}

func (s *session) export() {
	rep, err := s.controller.Report()
	if err != nil {
		fmt.Fprintln(s.out, "Nothing to export yet.")
		return
	}

	prompt := promptui.Prompt{
		Label:   "Save report to (.json or .xlsx)",
		Default: defaultExportPath,
	}

	path, err := prompt.Run()
	if err != nil {
		return
	}

	path = strings.TrimSpace(path)
	if err := export.Write(rep, path); err != nil {
		s.logger.Error("saving report", zap.Error(err))
		return
	}

	s.logger.Info("report saved", zap.String("path", path))
}

func (s *session) dump() {
	rep, err := s.controller.Report()
	if err != nil {
		fmt.Fprintln(s.out, "Nothing to dump yet.")
		return
	}

	name, err := export.ToTmpFile(rep)
	if err != nil {
		s.logger.Error("dumping report", zap.Error(err))
		return
	}

	fmt.Fprintf(s.out, "Report dumped to %s\n", name)
}
