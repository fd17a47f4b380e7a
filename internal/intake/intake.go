// Package intake is the gate in front of the analysis service: nothing is
// submitted unless a PDF resume is attached and the job description has text.
package intake

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/credexa/credexa-cli/internal/analysis"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
)

const pdfMIME = "application/pdf"

var (
	ErrNoResume            = errors.New("resume file is required")
	ErrEmptyJobDescription = errors.New("job description must not be empty")
	ErrNotPDF              = errors.New("resume must be a PDF file")
)

// Input is what the user supplied before submission.
type Input struct {
	ResumePath     string `validate:"required"`
	JobDescription string `validate:"notblank"`
}

func newValidator() *validator.Validate {
	validate := validator.New()
	// notblank rejects whitespace-only strings, which required lets through.
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
	return validate
}

// Validate reports every missing piece of input at once.
func (in Input) Validate() error {
	err := newValidator().Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "ResumePath":
			errs = append(errs, ErrNoResume)
		case "JobDescription":
			errs = append(errs, ErrEmptyJobDescription)
		default:
			errs = append(errs, fmt.Errorf("%s: failed %s", fe.Field(), fe.Tag()))
		}
	}

	return errors.Join(errs...)
}

// Ready tells whether the input may be submitted.
func (in Input) Ready() bool {
	return in.Validate() == nil
}

// Load validates the input, reads the resume and builds the request that will
// be sent. The job description is forwarded as typed.
func Load(in Input) (*analysis.Request, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	path := strings.TrimSpace(in.ResumePath)

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume %q: %w", path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("resume %q is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume %q: %w", path, err)
	}

	detected := mimetype.Detect(data)
	if !detected.Is(pdfMIME) {
		return nil, fmt.Errorf("%w: %s looks like %s", ErrNotPDF, filepath.Base(path), detected.String())
	}

	return &analysis.Request{
		ID: uuid.NewString(),
		Resume: &analysis.Resume{
			Name:        filepath.Base(path),
			ContentType: pdfMIME,
			Data:        data,
			Pages:       countPages(data),
		},
		JobDescription: in.JobDescription,
	}, nil
}

// countPages returns zero for documents the local parser cannot read; the
// service decides what it accepts.
func countPages(data []byte) (pages int) {
	defer func() {
		if recover() != nil {
			pages = 0
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0
	}

	return r.NumPage()
}

// ReadJobDescription resolves the job description from inline text or a file,
// where "-" means stdin. Text and file are mutually exclusive.
func ReadJobDescription(text, file string, stdin io.Reader) (string, error) {
	file = strings.TrimSpace(file)
	if file != "" && text != "" {
		return "", errors.New("job description text and file are mutually exclusive")
	}

	switch file {
	case "":
		return text, nil
	case "-":
		if stdin == nil {
			return "", errors.New("stdin is not available")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading job description from stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading job description file %q: %w", file, err)
		}
		return string(data), nil
	}
}
