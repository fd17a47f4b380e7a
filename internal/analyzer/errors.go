package analyzer

import (
	"errors"
	"fmt"
	"net/http"
)

const failureMessage = "failed to analyze resume"

var errNoRequest = errors.New("request is required")

// RequestError is the single error kind returned by Analyze. It covers
// transport failures, non-2xx statuses and unreadable bodies alike; Cause is
// kept for diagnostics only.
type RequestError struct {
	URL   string
	Cause error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", failureMessage, e.Cause)
	}
	return failureMessage
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// StatusError is the cause recorded when the service answers outside 2xx.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status: %s", e.Status)
}

func accepted(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
