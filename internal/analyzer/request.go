package analyzer

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"unicode/utf8"

	"github.com/credexa/credexa-cli/internal/analysis"
	"github.com/credexa/credexa-cli/internal/logger"

	"go.uber.org/zap"
)

const (
	resumeField         = "resume"
	jobDescriptionField = "jd"
	pdfContentType      = "application/pdf"
	requestIDHeader     = "X-Request-ID"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// postResume posts the multipart form and returns the raw body of an accepted response.
func (c *Client) postResume(url string, r *analysis.Request) ([]byte, error) {
	if r == nil || r.Resume == nil {
		return nil, fmt.Errorf("resume is required")
	}

	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	if err := writeResumePart(w, r.Resume); err != nil {
		return nil, err
	}

	field, err := w.CreateFormField(jobDescriptionField)
	if err != nil {
		return nil, err
	}

	if _, err = io.Copy(field, strings.NewReader(r.JobDescription)); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, url, &b)
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req, r.ID)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.request(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if !accepted(resp) {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return data, nil
}

func writeResumePart(w *multipart.Writer, resume *analysis.Resume) error {
	contentType := resume.ContentType
	if contentType == "" {
		contentType = pdfContentType
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		resumeField, quoteEscaper.Replace(resume.Name)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}

	_, err = io.Copy(part, bytes.NewReader(resume.Data))
	return err
}

func (c *Client) parseResult(log *zap.Logger, body []byte) (*analysis.Result, error) {
	log.Debug("analysis response",
		zap.Int("response_length", utf8.RuneCount(body)),
		zap.String("response_preview", logger.Preview(body, c.MaxLogLength)),
	)

	if c.StrictSchema {
		if err := analysis.ValidateJSON(body); err != nil {
			return nil, err
		}
	}

	return analysis.Decode(body)
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request, requestID string) *http.Request {
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	if requestID != "" {
		req.Header.Set(requestIDHeader, requestID)
	}

	return req
}
