package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/credexa/credexa-cli/internal/analysis"
	"github.com/credexa/credexa-cli/internal/analyzer"
	"github.com/credexa/credexa-cli/internal/flow"
	"github.com/credexa/credexa-cli/internal/intake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const resumePDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

const serviceBody = `{
	"overall_score": 82,
	"role": "Backend Engineer",
	"skill_fit_percent": 70,
	"missing_skills": ["Kubernetes"],
	"review": {"strengths": ["Go"], "areas_to_improve": ["Testing"]}
}`

func newController(t *testing.T, status int, body string) *flow.Controller {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client := analyzer.New(context.Background(), zap.NewNop(), server.URL)
	return flow.New(client, zap.NewNop())
}

func resumeInput(t *testing.T) intake.Input {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(path, []byte(resumePDF), 0o600))

	return intake.Input{ResumePath: path, JobDescription: "Backend engineer"}
}

func TestRunAnalyzePrintsReport(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := runAnalyze(newController(t, http.StatusOK, serviceBody), resumeInput(t), analyzeOptions{}, &out, zap.NewNop())
	require.NoError(t, err)

	printed := out.String()
	assert.Contains(t, printed, "82%")
	assert.Contains(t, printed, "Strong Fit")
	assert.Contains(t, printed, "Missing or not evident: Kubernetes")
}

func TestRunAnalyzeRaw(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := runAnalyze(newController(t, http.StatusOK, serviceBody), resumeInput(t), analyzeOptions{Raw: true}, &out, zap.NewNop())
	require.NoError(t, err)

	result, err := analysis.Decode(out.Bytes())
	require.NoError(t, err)
	role, ok := result.RoleLabel()
	require.True(t, ok)
	assert.Equal(t, "Backend Engineer", role)
	assert.NotContains(t, out.String(), "Strong Fit")
}

func TestRunAnalyzeExports(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "report.xlsx")

	var out bytes.Buffer
	err := runAnalyze(newController(t, http.StatusOK, serviceBody), resumeInput(t), analyzeOptions{Output: output}, &out, zap.NewNop())
	require.NoError(t, err)

	f, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer f.Close()

	label, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Strong Fit", label)
}

func TestRunAnalyzeServiceFailure(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	controller := newController(t, http.StatusInternalServerError, `{"error":"boom"}`)

	err := runAnalyze(controller, resumeInput(t), analyzeOptions{}, &out, zap.NewNop())

	var reqErr *analyzer.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, flow.Failed, controller.State())
	assert.Empty(t, out.String())
}

func TestRunAnalyzeIncompleteInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	controller := newController(t, http.StatusOK, serviceBody)

	err := runAnalyze(controller, intake.Input{ResumePath: "cv.pdf", JobDescription: "   "}, analyzeOptions{}, &out, zap.NewNop())

	assert.ErrorIs(t, err, intake.ErrEmptyJobDescription)
	assert.Equal(t, flow.Idle, controller.State())
}

func TestWaitWithProgress(t *testing.T) {
	t.Parallel()

	done := make(chan flow.Outcome, 1)

	var out bytes.Buffer
	go func() {
		time.Sleep(50 * time.Millisecond)
		done <- flow.Outcome{State: flow.Succeeded}
	}()

	outcome := waitWithProgress(&out, done, 5*time.Millisecond)

	assert.Equal(t, flow.Succeeded, outcome.State)
	for _, step := range progressSteps {
		assert.Equal(t, 1, strings.Count(out.String(), step), step)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, Execute())
	assert.True(t, strings.HasPrefix(out.String(), "credexa version: "+version))
}

func TestSessionRefusesIncompleteInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := &session{
		controller: newController(t, http.StatusOK, serviceBody),
		logger:     zap.NewNop(),
		out:        &out,
		input:      intake.Input{ResumePath: "cv.pdf"},
	}

	s.analyze()

	assert.Contains(t, out.String(), "Cannot analyze yet")
	assert.NotContains(t, out.String(), "Analyzing resume")
	assert.Equal(t, flow.Idle, s.controller.State())
}

func TestSessionAnalyzeThenDump(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := &session{
		controller: newController(t, http.StatusOK, serviceBody),
		logger:     zap.NewNop(),
		out:        &out,
		input:      resumeInput(t),
	}

	s.dump()
	assert.Contains(t, out.String(), "Nothing to dump yet.")

	s.analyze()
	require.Equal(t, flow.Succeeded, s.controller.State())
	assert.Contains(t, out.String(), "Strong Fit")

	out.Reset()
	s.dump()

	printed := strings.TrimSpace(out.String())
	require.True(t, strings.HasPrefix(printed, "Report dumped to "), printed)
	name := strings.TrimPrefix(printed, "Report dumped to ")
	t.Cleanup(func() { _ = os.Remove(name) })

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"label": "Strong Fit"`)
}

func TestSessionAnalyzeFailureShowsNotice(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := &session{
		controller: newController(t, http.StatusBadGateway, ""),
		logger:     zap.NewNop(),
		out:        &out,
		input:      resumeInput(t),
	}

	s.analyze()

	assert.Contains(t, out.String(), failureNotice)
	assert.Equal(t, flow.Failed, s.controller.State())
}
