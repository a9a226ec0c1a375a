package llm

import (
	"strings"
	"testing"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain array", in: `[{"a":1}]`, want: `[{"a":1}]`},
		{name: "json fence", in: "```json\n[{\"a\":1}]\n```", want: `[{"a":1}]`},
		{name: "bare fence", in: "```\n{\"companyName\":\"Acme\"}\n```", want: `{"companyName":"Acme"}`},
		{name: "chatter around", in: "Here you go:\n[1,2]\nHope it helps", want: "[1,2]"},
		{name: "no json", in: "  sorry, I cannot help  ", want: "sorry, I cannot help"},
		{name: "unterminated", in: `[{"a":1}`, want: `[{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJSONResponse(tt.in); got != tt.want {
				t.Fatalf("CleanJSONResponse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPromptsEmbedInputs(t *testing.T) {
	p := OptimizeCVPrompt("  CV BODY  ", "JD BODY")
	if !strings.Contains(p, "CV BODY") || !strings.Contains(p, "JD BODY") || strings.Contains(p, "{{") {
		t.Fatalf("optimize prompt not filled: %q", p)
	}
	if d := ApplicationDetailsPrompt("Join Acme"); !strings.Contains(d, "Join Acme") || !strings.Contains(d, "companyName") {
		t.Fatalf("details prompt not filled: %q", d)
	}
	if c := CoverLetterPrompt("cv", "jd"); strings.Contains(c, "{{") {
		t.Fatalf("cover letter prompt has unfilled placeholders")
	}
}
