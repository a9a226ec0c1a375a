package optimizer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxRecommendations caps the number of surfaced edits.
	MaxRecommendations = 7

	maxSentences  = 2
	maxTextLength = 300
)

var noChangePhrases = []string{
	"nothing to change",
	"no change needed",
	"already good",
	"already optimal",
	"no changes required",
	"no modification needed",
	"is already",
	"already contains",
	"already includes",
	"no improvement needed",
}

var sentenceTerminators = regexp.MustCompile(`[.!?]+`)

// Validate keeps the candidates that are safe to show, in their original
// order, up to MaxRecommendations.
func Validate(candidates []Recommendation, jobDescription string) []Recommendation {
	jd := strings.ToLower(jobDescription)
	out := make([]Recommendation, 0, MaxRecommendations)
	for _, rec := range candidates {
		if len(out) == MaxRecommendations {
			break
		}
		if rejectReason(rec, jd) != "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// rejectReason returns "" for an acceptable recommendation. lowerJD must
// already be lower-cased.
func rejectReason(rec Recommendation, lowerJD string) string {
	current := strings.TrimSpace(rec.CurrentText)
	suggested := strings.TrimSpace(rec.SuggestedText)

	switch {
	case suggested == "":
		return "empty_suggestion"
	case current == suggested:
		return "unchanged"
	case sentenceCount(current) > maxSentences || sentenceCount(suggested) > maxSentences:
		return "too_many_sentences"
	case utf8.RuneCountInString(current) > maxTextLength || utf8.RuneCountInString(suggested) > maxTextLength:
		return "too_long"
	case mentionsNoChange(rec.Reason):
		return "no_change_reason"
	case len(rec.Keywords) == 0:
		return "no_keywords"
	}
	for _, kw := range rec.Keywords {
		if !keywordInJobDescription(kw, lowerJD) {
			return "unverified_keyword"
		}
	}
	return ""
}

func sentenceCount(text string) int {
	n := 0
	for _, part := range sentenceTerminators.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}

func mentionsNoChange(reason string) bool {
	lower := strings.ToLower(reason)
	for _, phrase := range noChangePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// keywordInJobDescription accepts a keyword found verbatim, or a multi-word
// keyword whose every word longer than two characters is found.
func keywordInJobDescription(keyword, lowerJD string) bool {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return false
	}
	if strings.Contains(lowerJD, kw) {
		return true
	}
	words := strings.Fields(kw)
	if len(words) < 2 {
		return false
	}
	checked := 0
	for _, w := range words {
		if utf8.RuneCountInString(w) <= 2 {
			continue
		}
		if !strings.Contains(lowerJD, w) {
			return false
		}
		checked++
	}
	return checked > 0
}
