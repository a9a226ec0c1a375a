package applications

import (
	"encoding/json"
	"regexp"
	"strings"

	"jobassist-backend/internal/llm"
)

const (
	UnknownCompany  = "Unknown Company"
	UnknownPosition = "Unknown Position"
)

// Details is the company and title inferred from a job description.
type Details struct {
	CompanyName string `json:"companyName"`
	JobTitle    string `json:"jobTitle"`
}

// namePattern captures a capitalised run of words. Phrase matches whose first
// word is in skip are passed over in favour of later matches.
type namePattern struct {
	re   *regexp.Regexp
	skip map[string]bool
}

const (
	nameRun  = `\p{Lu}[\p{L}\p{N}&'-]*(?:[ \t]+\p{Lu}[\p{L}\p{N}&'-]*)*`
	titleRun = `\p{Lu}[\p{L}\p{N}/&+-]*(?:[ \t]+\p{Lu}[\p{L}\p{N}/&+-]*)*`
)

var (
	pronounWords = map[string]bool{"Our": true, "Us": true, "The": true, "A": true, "An": true, "My": true, "Your": true}

	companyPatterns = []namePattern{
		{re: regexp.MustCompile(`(?im)^\s*company(?:\s+name)?\s*:\s*(.+?)\s*$`)},
		{re: regexp.MustCompile(`\b[Jj]oin\s+(` + nameRun + `)`), skip: pronounWords},
		{re: regexp.MustCompile(`\b[Aa]t\s+(` + nameRun + `)`), skip: pronounWords},
	}
	titlePatterns = []namePattern{
		{re: regexp.MustCompile(`(?im)^\s*(?:job\s+title|position|role)\s*:\s*(.+?)\s*$`)},
		{re: regexp.MustCompile(`\b[Aa]s\s+an?\s+(` + titleRun + `)`), skip: pronounWords},
	}
)

// parseDetails reads the model's JSON answer. ok is false when the answer is
// not a JSON object.
func parseDetails(response string) (Details, bool) {
	var d Details
	if err := json.Unmarshal([]byte(llm.CleanJSONResponse(response)), &d); err != nil {
		return Details{}, false
	}
	d.CompanyName = known(d.CompanyName, UnknownCompany)
	d.JobTitle = known(d.JobTitle, UnknownPosition)
	return d, true
}

// heuristicDetails looks for explicit company and title phrases.
func heuristicDetails(jobDescription string) Details {
	return Details{
		CompanyName: firstMatch(companyPatterns, jobDescription),
		JobTitle:    firstMatch(titlePatterns, jobDescription),
	}
}

// resolveDetails fills what the model missed from the heuristic, then the
// Unknown defaults.
func resolveDetails(model Details, jobDescription string) (Details, bool) {
	usedHeuristic := false
	if model.CompanyName == "" || model.JobTitle == "" {
		h := heuristicDetails(jobDescription)
		if model.CompanyName == "" && h.CompanyName != "" {
			model.CompanyName = h.CompanyName
			usedHeuristic = true
		}
		if model.JobTitle == "" && h.JobTitle != "" {
			model.JobTitle = h.JobTitle
			usedHeuristic = true
		}
	}
	if model.CompanyName == "" {
		model.CompanyName = UnknownCompany
	}
	if model.JobTitle == "" {
		model.JobTitle = UnknownPosition
	}
	return model, usedHeuristic
}

func firstMatch(patterns []namePattern, text string) string {
	for _, p := range patterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			v := strings.Trim(strings.TrimSpace(m[1]), ".,;:!")
			if v == "" {
				continue
			}
			if first, _, _ := strings.Cut(v, " "); p.skip[first] {
				continue
			}
			return v
		}
	}
	return ""
}

// known blanks out the placeholder the model uses for "not found".
func known(v, placeholder string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, placeholder) {
		return ""
	}
	return v
}
