// Package flow owns a submission's lifecycle: Idle, Submitting, then
// Succeeded or Failed. It holds the single current result and is the only
// place the renderer is invoked from.
package flow

import (
	"errors"
	"fmt"
	"sync"

	"github.com/credexa/credexa-cli/internal/analysis"
	"github.com/credexa/credexa-cli/internal/intake"
	"github.com/credexa/credexa-cli/internal/logger"
	"github.com/credexa/credexa-cli/internal/report"

	"go.uber.org/zap"
)

type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrInFlight is returned when a submission is started while another one runs.
	ErrInFlight = errors.New("a submission is already in flight")
	// ErrNoResult is returned when a report is asked for outside the Succeeded state.
	ErrNoResult = errors.New("no analysis result to render")
)

// Submitter sends one request to the scoring service.
type Submitter interface {
	Analyze(req *analysis.Request) (*analysis.Result, error)
}

// Loader turns user input into a request. intake.Load is the default.
type Loader func(in intake.Input) (*analysis.Request, error)

// Outcome is what a finished submission delivers.
type Outcome struct {
	State  State
	Result *analysis.Result
	Err    error
}

type Controller struct {
	submitter Submitter
	load      Loader
	logger    *zap.Logger

	mu      sync.Mutex
	state   State
	loading bool
	current *analysis.Result
	lastErr error
}

func New(submitter Submitter, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Controller{
		submitter: submitter,
		load:      intake.Load,
		logger:    logger,
		state:     Idle,
	}
}

// WithLoader replaces the input loader.
func (c *Controller) WithLoader(load Loader) *Controller {
	c.load = load
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error of the last failed submission, nil in any other state.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Failed {
		return nil
	}
	return c.lastErr
}

// Result returns the current result, available only after a successful submission.
func (c *Controller) Result() (*analysis.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Succeeded {
		return nil, false
	}
	return c.current, true
}

// LastResult returns whatever the result slot holds, regardless of state. A
// failed submission leaves the previous result in place.
func (c *Controller) LastResult() *analysis.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Report renders the current result.
func (c *Controller) Report() (*report.Report, error) {
	result, ok := c.Result()
	if !ok {
		return nil, ErrNoResult
	}
	return report.Render(result), nil
}

// Submit validates the input and, if it is complete, sends it and waits for
// the outcome. Invalid input is returned as is and leaves the state untouched.
func (c *Controller) Submit(in intake.Input) (*analysis.Result, error) {
	req, err := c.begin(in)
	if err != nil {
		return nil, err
	}

	out := c.run(req)
	return out.Result, out.Err
}

// SubmitAsync is Submit without waiting. Validation and the in-flight check
// happen before it returns; the outcome arrives on the channel exactly once.
func (c *Controller) SubmitAsync(in intake.Input) (<-chan Outcome, error) {
	req, err := c.begin(in)
	if err != nil {
		return nil, err
	}

	done := make(chan Outcome, 1)
	go func() {
		done <- c.run(req)
		close(done)
	}()

	return done, nil
}

func (c *Controller) begin(in intake.Input) (*analysis.Request, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.state == Submitting || c.loading {
		c.mu.Unlock()
		return nil, ErrInFlight
	}
	c.loading = true
	c.mu.Unlock()

	// The resume is read and parsed outside the lock so State and Report
	// stay responsive; loading reserves the single in-flight slot meanwhile.
	req, err := c.load(in)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		return nil, err
	}

	c.state = Submitting
	c.lastErr = nil

	return req, nil
}

func (c *Controller) run(req *analysis.Request) Outcome {
	log := logger.WithFields(c.logger, zap.String(logger.FieldSubmissionID, req.ID))

	log.Info("submitting resume for analysis",
		zap.String("resume", req.Resume.Name),
		zap.Int("resume_bytes", len(req.Resume.Data)),
		zap.Int("resume_pages", req.Resume.Pages),
	)

	result, err := c.submitter.Analyze(req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = Failed
		c.lastErr = err
		log.Error("analysis failed", zap.Error(err))
		return Outcome{State: Failed, Err: err}
	}

	c.state = Succeeded
	c.current = result
	log.Info("analysis completed")

	return Outcome{State: Succeeded, Result: result}
}
