package logger

import "testing"

func TestPreview(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  `{"overall_score": 82}`,
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  `{"role": "QA"}`,
			limit:  40,
			expect: `{"role": "QA"}`,
		},
		{
			name:   "truncates and adds ellipsis",
			input:  `{"overall_score": 82}`,
			limit:  5,
			expect: `{"ove...`,
		},
		{
			name:   "collapses indentation into one line",
			input:  "{\n  \"overall_score\": 82,\n  \"role\": null\n}\n",
			limit:  100,
			expect: `{ "overall_score": 82, "role": null }`,
		},
		{
			name:   "counts runes not bytes",
			input:  "résumé",
			limit:  3,
			expect: "rés...",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Preview([]byte(tt.input), tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
