package optimizer

import (
	"errors"
	"testing"
)

func TestParseRecommendationsShapes(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "array", in: `[{"section":"S","currentText":"a","suggestedText":"b","keywords":["go"],"reason":"r"}]`, want: 1},
		{name: "fenced", in: "```json\n[{\"section\":\"S\"},{\"section\":\"T\"}]\n```", want: 2},
		{name: "wrapped", in: `{"recommendations":[{"section":"S"}]}`, want: 1},
		{name: "other object", in: `{"message":"none"}`, want: 0},
		{name: "non-object items skipped", in: `["x", 3, {"section":"S"}]`, want: 1},
		{name: "garbage", in: "I could not produce JSON today.", wantErr: true},
		{name: "truncated", in: `[{"section":"S"`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecommendations(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnparseable) {
					t.Fatalf("expected ErrUnparseable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("got %d recommendations, want %d", len(got), tt.want)
			}
		})
	}
}

func TestParseRecommendationsCoercesFields(t *testing.T) {
	got, err := ParseRecommendations(`[{"section":7,"currentText":"a","suggestedText":"b","keywords":"Go","reason":null},
		{"keywords":["Go", 5, "SQL"]}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Section != "" || got[0].Reason != "" {
		t.Fatalf("expected non-strings to become empty, got %+v", got[0])
	}
	if len(got[0].Keywords) != 1 || got[0].Keywords[0] != "Go" {
		t.Fatalf("expected string keyword to become a list, got %v", got[0].Keywords)
	}
	if len(got[1].Keywords) != 2 || got[1].Keywords[1] != "SQL" {
		t.Fatalf("expected non-string keywords dropped, got %v", got[1].Keywords)
	}
}
