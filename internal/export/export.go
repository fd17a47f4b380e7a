// Package export saves a rendered report to disk as JSON or as an Excel workbook.
package export

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/credexa/credexa-cli/internal/report"
)

var errNilReport = errors.New("report is required")

// Write picks the format from the file extension: .xlsx produces a workbook,
// anything else JSON.
func Write(r *report.Report, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ToExcel(r, path)
	}
	return ToJSON(r, path)
}

func ToJSON(r *report.Report, path string) error {
	if r == nil {
		return errNilReport
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	return encode(file, r)
}

// ToTmpFile dumps the report into a new temporary JSON file and returns its name.
func ToTmpFile(r *report.Report) (string, error) {
	if r == nil {
		return "", errNilReport
	}

	file, err := os.CreateTemp("", "report_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := encode(file, r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func encode(w io.Writer, r *report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}
