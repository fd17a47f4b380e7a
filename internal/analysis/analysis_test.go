package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullBody = `{
  "overall_score": 82,
  "role": "Backend Engineer",
  "skill_fit_percent": 70,
  "missing_skills": ["Kubernetes"],
  "review": {
    "strengths": ["Strong Python"],
    "areas_to_improve": ["Add cloud experience", "Get certified"],
    "overall_review": "Good candidate"
  },
  "model_version": "v3"
}`

func TestDecode_FullBody(t *testing.T) {
	result, err := Decode([]byte(fullBody))
	require.NoError(t, err)

	score, ok := result.Score()
	require.True(t, ok)
	assert.Equal(t, 82.0, score)

	role, ok := result.RoleLabel()
	require.True(t, ok)
	assert.Equal(t, "Backend Engineer", role)

	fit, ok := result.SkillFit()
	require.True(t, ok)
	assert.Equal(t, 70.0, fit)

	assert.Equal(t, []string{"Kubernetes"}, result.Missing())
	assert.Equal(t, []string{"Strong Python"}, result.Strengths())
	assert.Equal(t, []string{"Add cloud experience", "Get certified"}, result.AreasToImprove())

	review, ok := result.OverallReview()
	require.True(t, ok)
	assert.Equal(t, "Good candidate", review)

	_, ok = result.RoleFitSummary()
	assert.False(t, ok)
}

func TestDecode_EmptyObjectLeavesEverythingAbsent(t *testing.T) {
	result, err := Decode([]byte(`{}`))
	require.NoError(t, err)

	_, ok := result.Score()
	assert.False(t, ok)
	_, ok = result.RoleLabel()
	assert.False(t, ok)
	_, ok = result.SkillFit()
	assert.False(t, ok)
	assert.Nil(t, result.Review)
	assert.Empty(t, result.Missing())
}

func TestDecode_NullsAreAbsent(t *testing.T) {
	result, err := Decode([]byte(`{"role": null, "skill_fit_percent": null, "review": null}`))
	require.NoError(t, err)

	assert.Nil(t, result.Role)
	assert.Nil(t, result.SkillFitPercent)
	assert.Nil(t, result.Review)
}

func TestDecode_RejectsNonJSON(t *testing.T) {
	_, err := Decode([]byte(`<html>bad gateway</html>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse analysis response")
}

func TestDecode_RejectsWrongTypes(t *testing.T) {
	_, err := Decode([]byte(`{"role": 12}`))
	require.Error(t, err)
}

func TestNilResultAccessors(t *testing.T) {
	var r *Result

	_, ok := r.Score()
	assert.False(t, ok)
	_, ok = r.RoleLabel()
	assert.False(t, ok)
	_, ok = r.OverallReview()
	assert.False(t, ok)
	assert.Nil(t, r.Strengths())
	assert.Nil(t, r.AreasToImprove())
	assert.Nil(t, r.Missing())
}

func TestEmptyStringsCountAsAbsent(t *testing.T) {
	empty := "  "
	r := &Result{Role: &empty, Review: &Review{OverallReview: &empty}}

	_, ok := r.RoleLabel()
	assert.False(t, ok)
	_, ok = r.OverallReview()
	assert.False(t, ok)
}
