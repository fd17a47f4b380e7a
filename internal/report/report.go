// Package report turns an analysis result into the groups shown to the user:
// score badge, key factors, explainability items and improvement suggestions.
// Rendering is a pure function of the result.
package report

import (
	"strconv"

	"github.com/credexa/credexa-cli/internal/analysis"
)

// Placeholder is shown wherever the service left a field out.
const Placeholder = "—"

const missingPrefix = "Missing or not evident: "

// Cut points shared by the label and colour functions. A score equal to a cut
// point belongs to the higher band.
const (
	excellentFrom = 90
	strongFrom    = 75
	moderateFrom  = 60
)

type Kind string

const (
	KindPositive Kind = "positive"
	KindWarning  Kind = "warning"
	KindNeutral  Kind = "neutral"
)

var kindIcons = map[Kind]string{
	KindPositive: "✓",
	KindWarning:  "⚠",
	KindNeutral:  "ℹ",
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type ColorBand string

const (
	ColorGreen ColorBand = "green"
	ColorBlue  ColorBand = "blue"
	ColorAmber ColorBand = "amber"
	ColorRed   ColorBand = "red"
)

type Badge struct {
	// Score is the display text: the score as returned, or the placeholder.
	Score string    `json:"score"`
	Value float64   `json:"value"`
	Label string    `json:"label"`
	Class string    `json:"class"`
	Color ColorBand `json:"color"`
}

type Factor struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Item struct {
	Kind Kind   `json:"kind"`
	Icon string `json:"icon"`
	Text string `json:"text"`
}

type Suggestion struct {
	Priority Priority `json:"priority"`
	Action   string   `json:"action"`
	Impact   string   `json:"impact"`
}

type Report struct {
	Badge          Badge        `json:"badge"`
	Factors        []Factor     `json:"factors"`
	Explainability []Item       `json:"explainability"`
	Suggestions    []Suggestion `json:"suggestions"`
}

// Render maps a result to its report. A nil result yields a report made of
// placeholders and an empty list of items and suggestions.
func Render(result *analysis.Result) *Report {
	return &Report{
		Badge:          scoreBadge(result),
		Factors:        factors(result),
		Explainability: explainability(result),
		Suggestions:    suggestions(result),
	}
}

func scoreBadge(result *analysis.Result) Badge {
	score, ok := result.Score()

	display := Placeholder
	if ok {
		display = formatNumber(score)
	}

	label, class := Tier(score)

	return Badge{
		Score: display,
		Value: score,
		Label: label,
		Class: class,
		Color: Color(score),
	}
}

// Tier returns the badge label and class for a score.
func Tier(score float64) (label, class string) {
	switch {
	case score >= excellentFrom:
		return "Excellent Fit", "badge-strong"
	case score >= strongFrom:
		return "Strong Fit", "badge-strong"
	case score >= moderateFrom:
		return "Moderate Fit", "badge-moderate"
	default:
		return "Weak Fit", "badge-weak"
	}
}

// Color returns the display band for a score. It uses the same cut points as
// Tier but is computed on its own.
func Color(score float64) ColorBand {
	if score >= excellentFrom {
		return ColorGreen
	}
	if score >= strongFrom {
		return ColorBlue
	}
	if score >= moderateFrom {
		return ColorAmber
	}
	return ColorRed
}

func factors(result *analysis.Result) []Factor {
	role := Placeholder
	if v, ok := result.RoleLabel(); ok {
		role = v
	}

	skillFit := Placeholder
	if v, ok := result.SkillFit(); ok {
		skillFit = formatNumber(v) + "%"
	}

	return []Factor{
		{Label: "Role", Value: role},
		{Label: "Skill Fit", Value: skillFit},
	}
}

// explainability concatenates strengths, missing skills, the overall review
// and the role-fit summary, in that order.
func explainability(result *analysis.Result) []Item {
	items := make([]Item, 0, len(result.Strengths())+len(result.Missing())+2)

	for _, strength := range result.Strengths() {
		items = append(items, newItem(KindPositive, strength))
	}

	for _, skill := range result.Missing() {
		items = append(items, newItem(KindWarning, missingPrefix+skill))
	}

	if review, ok := result.OverallReview(); ok {
		items = append(items, newItem(KindNeutral, review))
	}

	if summary, ok := result.RoleFitSummary(); ok {
		items = append(items, newItem(KindNeutral, summary))
	}

	return items
}

func newItem(kind Kind, text string) Item {
	return Item{Kind: kind, Icon: kindIcons[kind], Text: text}
}

// suggestions ranks areas to improve by their position in the list only.
func suggestions(result *analysis.Result) []Suggestion {
	areas := result.AreasToImprove()
	out := make([]Suggestion, 0, len(areas))

	for idx, area := range areas {
		priority, impact := PositionalPriority(idx)
		out = append(out, Suggestion{
			Priority: priority,
			Action:   area,
			Impact:   impact,
		})
	}

	return out
}

// PositionalPriority returns the priority and impact text for the suggestion
// at index idx.
func PositionalPriority(idx int) (Priority, string) {
	switch idx {
	case 0:
		return PriorityHigh, "High impact"
	case 1:
		return PriorityMedium, "Moderate impact"
	default:
		return PriorityLow, "Incremental improvement"
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
