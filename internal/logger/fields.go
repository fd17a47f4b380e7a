package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldServiceURL is the structured log field key for the analysis service endpoint.
	FieldServiceURL = "service_url"
	// FieldSubmissionID is the structured log field key for a single submission.
	FieldSubmissionID = "submission_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// SubmissionFields returns the fields describing where a submission goes and
// which submission it is. Empty values are dropped.
func SubmissionFields(serviceURL, submissionID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldServiceURL, Value: serviceURL},
		StringField{Key: FieldSubmissionID, Value: submissionID},
	)
}

// WithSubmission attaches the submission fields to the provided logger.
func WithSubmission(logger *zap.Logger, serviceURL, submissionID string) *zap.Logger {
	return WithFields(logger, SubmissionFields(serviceURL, submissionID)...)
}
