package analysis

import "strings"

// Request is one submission: a resume and the job description it is matched
// against. ID correlates logs and the X-Request-ID header.
type Request struct {
	ID             string
	Resume         *Resume
	JobDescription string
}

// Resume is a loaded resume file ready to be sent to the analysis service.
type Resume struct {
	Name        string
	ContentType string
	Data        []byte
	// Pages is the local page count, zero when the document could not be parsed.
	Pages int
}

// Result is the analysis returned by the scoring service. Any field may be
// missing; optional scalars are pointers so absence survives decoding.
type Result struct {
	OverallScore    *float64 `json:"overall_score,omitempty" mapstructure:"overall_score"`
	Role            *string  `json:"role,omitempty" mapstructure:"role"`
	SkillFitPercent *float64 `json:"skill_fit_percent,omitempty" mapstructure:"skill_fit_percent"`
	MissingSkills   []string `json:"missing_skills,omitempty" mapstructure:"missing_skills"`
	Review          *Review  `json:"review,omitempty" mapstructure:"review"`
}

type Review struct {
	Strengths      []string `json:"strengths,omitempty" mapstructure:"strengths"`
	AreasToImprove []string `json:"areas_to_improve,omitempty" mapstructure:"areas_to_improve"`
	OverallReview  *string  `json:"overall_review,omitempty" mapstructure:"overall_review"`
	RoleFitSummary *string  `json:"role_fit_summary,omitempty" mapstructure:"role_fit_summary"`
}

// Strengths returns review.strengths, nil-safe.
func (r *Result) Strengths() []string {
	if r == nil || r.Review == nil {
		return nil
	}
	return r.Review.Strengths
}

// AreasToImprove returns review.areas_to_improve, nil-safe.
func (r *Result) AreasToImprove() []string {
	if r == nil || r.Review == nil {
		return nil
	}
	return r.Review.AreasToImprove
}

func (r *Result) Missing() []string {
	if r == nil {
		return nil
	}
	return r.MissingSkills
}

// OverallReview returns the summary text and whether it carries any content.
func (r *Result) OverallReview() (string, bool) {
	if r == nil || r.Review == nil {
		return "", false
	}
	return presentString(r.Review.OverallReview)
}

// RoleFitSummary returns the role-fit narrative and whether it carries any content.
func (r *Result) RoleFitSummary() (string, bool) {
	if r == nil || r.Review == nil {
		return "", false
	}
	return presentString(r.Review.RoleFitSummary)
}

func (r *Result) RoleLabel() (string, bool) {
	if r == nil {
		return "", false
	}
	return presentString(r.Role)
}

func (r *Result) Score() (float64, bool) {
	if r == nil || r.OverallScore == nil {
		return 0, false
	}
	return *r.OverallScore, true
}

func (r *Result) SkillFit() (float64, bool) {
	if r == nil || r.SkillFitPercent == nil {
		return 0, false
	}
	return *r.SkillFitPercent, true
}

// An empty string counts as absent, the same way the service omits fields it
// could not fill.
func presentString(s *string) (string, bool) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "", false
	}
	return *s, true
}
