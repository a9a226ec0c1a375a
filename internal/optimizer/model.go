package optimizer

// Recommendation is one suggested CV edit.
type Recommendation struct {
	Section       string   `json:"section"`
	Location      string   `json:"location"`
	CurrentText   string   `json:"currentText"`
	SuggestedText string   `json:"suggestedText"`
	Keywords      []string `json:"keywords"`
	Reason        string   `json:"reason"`
}

// Result is what the optimize endpoint returns.
type Result struct {
	Recommendations []Recommendation `json:"recommendations"`
	// Degraded is set when the model output could not be parsed and the
	// placeholder recommendation was returned instead.
	Degraded bool `json:"degraded"`
}

// Fallback is returned in place of recommendations when the model response
// is unreadable.
func Fallback() Recommendation {
	return Recommendation{
		Section:       "CV",
		Location:      "Various sections",
		CurrentText:   "See CV text above",
		SuggestedText: "Review the AI response for suggestions",
		Keywords:      []string{},
		Reason:        "Could not parse structured recommendations. Please review the response manually.",
	}
}
