package optimizer

import (
	"encoding/json"
	"errors"
	"fmt"

	"jobassist-backend/internal/llm"
)

// ErrUnparseable marks model output that is not JSON at all.
var ErrUnparseable = errors.New("model response is not valid JSON")

// ParseRecommendations decodes model output into candidate recommendations.
// It accepts a bare array or an object with a "recommendations" array. Any
// other well-formed JSON yields no candidates.
func ParseRecommendations(response string) ([]Recommendation, error) {
	cleaned := llm.CleanJSONResponse(response)
	var payload any
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	var items []any
	switch v := payload.(type) {
	case []any:
		items = v
	case map[string]any:
		items, _ = v["recommendations"].([]any)
	}

	out := make([]Recommendation, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, coerce(obj))
	}
	return out, nil
}

func coerce(obj map[string]any) Recommendation {
	return Recommendation{
		Section:       stringField(obj, "section"),
		Location:      stringField(obj, "location"),
		CurrentText:   stringField(obj, "currentText"),
		SuggestedText: stringField(obj, "suggestedText"),
		Keywords:      keywordsField(obj["keywords"]),
		Reason:        stringField(obj, "reason"),
	}
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func keywordsField(raw any) []string {
	switch v := raw.(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
