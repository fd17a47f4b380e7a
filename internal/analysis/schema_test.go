package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON_Valid(t *testing.T) {
	assert.NoError(t, ValidateJSON([]byte(fullBody)))
	assert.NoError(t, ValidateJSON([]byte(`{}`)))
	assert.NoError(t, ValidateJSON([]byte(`{"role": null, "review": {"overall_review": null}}`)))
}

func TestValidateJSON_WrongType(t *testing.T) {
	err := ValidateJSON([]byte(`{"overall_score": "high", "review": {"strengths": [1, 2]}}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
	assert.GreaterOrEqual(t, len(validationErr.Errors), 2)
	assert.Contains(t, err.Error(), "overall_score")
}

func TestValidateJSON_NotAnObject(t *testing.T) {
	err := ValidateJSON([]byte(`["not", "an", "object"]`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateJSON_Malformed(t *testing.T) {
	err := ValidateJSON([]byte(`{"overall_score":`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.NotNil(t, errors.Unwrap(err))
}
