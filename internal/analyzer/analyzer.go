package analyzer

import (
	"context"
	"net/http"
	"strings"

	"github.com/credexa/credexa-cli/internal/analysis"
	"github.com/credexa/credexa-cli/internal/logger"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:5000"
	AnalyzePath    = "/api/analyze"
	userAgent      = "credexa-cli"

	defaultMaxLogLength = 200
)

type Client struct {
	// ctx used only for http requests right now
	ctx    context.Context
	logger *zap.Logger
	// HTTPClient has no Timeout: a submission runs until the transport gives up.
	HTTPClient *http.Client
	UserAgent  string
	BaseURL    string
	// StrictSchema rejects responses that do not match the result schema.
	StrictSchema bool
	MaxLogLength int
}

func New(ctx context.Context, logger *zap.Logger, baseURL string) *Client {
	if ctx == nil {
		ctx = context.Background()
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	if baseURL = strings.TrimSpace(baseURL); baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		ctx:          ctx,
		logger:       logger,
		HTTPClient:   &http.Client{},
		UserAgent:    userAgent,
		BaseURL:      baseURL,
		StrictSchema: true,
		MaxLogLength: defaultMaxLogLength,
	}
}

// Endpoint is the full URL submissions are posted to.
func (c *Client) Endpoint() string {
	return strings.TrimRight(c.BaseURL, "/") + AnalyzePath
}

// Analyze sends the resume and job description to the scoring service and
// returns its result. Every failure is reported as *RequestError. The request
// is sent once; there is no retry.
func (c *Client) Analyze(req *analysis.Request) (*analysis.Result, error) {
	endpoint := c.Endpoint()
	if req == nil {
		return nil, &RequestError{URL: endpoint, Cause: errNoRequest}
	}

	log := logger.WithSubmission(c.logger, endpoint, req.ID)

	body, err := c.postResume(endpoint, req)
	if err != nil {
		log.Debug("analysis request failed", zap.Error(err))
		return nil, &RequestError{URL: endpoint, Cause: err}
	}

	result, err := c.parseResult(log, body)
	if err != nil {
		return nil, &RequestError{URL: endpoint, Cause: err}
	}

	return result, nil
}
