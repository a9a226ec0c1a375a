package llm

import "strings"

// CleanJSONResponse strips markdown code fences and any chatter around the
// outermost JSON array or object.
func CleanJSONResponse(response string) string {
	text := strings.TrimSpace(response)
	if start := strings.Index(text, "```"); start >= 0 {
		body := text[start+3:]
		if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], "[{") {
			// language tag such as ```json
			body = body[nl+1:]
		}
		if end := strings.LastIndex(body, "```"); end >= 0 {
			body = body[:end]
		}
		text = strings.TrimSpace(body)
	}

	first := strings.IndexAny(text, "[{")
	if first < 0 {
		return text
	}
	closer := byte(']')
	if text[first] == '{' {
		closer = '}'
	}
	last := strings.LastIndexByte(text, closer)
	if last < first {
		return text[first:]
	}
	return text[first : last+1]
}
