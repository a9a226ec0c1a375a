package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/optimize_cv.txt
	optimizeCVTemplate string
	//go:embed prompts/cover_letter.txt
	coverLetterTemplate string
	//go:embed prompts/application_details.txt
	applicationDetailsTemplate string
)

// OptimizeCVPrompt asks for a JSON array of CV edit recommendations.
func OptimizeCVPrompt(cvText, jobDescription string) string {
	return fill(optimizeCVTemplate, cvText, jobDescription)
}

// CoverLetterPrompt asks for a ready-to-send cover letter body.
func CoverLetterPrompt(cvText, jobDescription string) string {
	return fill(coverLetterTemplate, cvText, jobDescription)
}

// ApplicationDetailsPrompt asks for {"companyName","jobTitle"} as JSON.
func ApplicationDetailsPrompt(jobDescription string) string {
	return fill(applicationDetailsTemplate, "", jobDescription)
}

func fill(template, cvText, jobDescription string) string {
	return strings.NewReplacer(
		"{{CV_TEXT}}", strings.TrimSpace(cvText),
		"{{JOB_DESCRIPTION}}", strings.TrimSpace(jobDescription),
	).Replace(template)
}
