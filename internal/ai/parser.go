package ai

import (
	"regexp"
	"strings"
)

var (
	thinkTagRegex  = regexp.MustCompile(`(?s)<think>.*?</think>`)
	codeFenceRegex = regexp.MustCompile("(?m)^```[a-z]*\\s*$")
)

// StripThinkTags removes DeepSeek R1 reasoning tags from the response.
func StripThinkTags(text string) string {
	return strings.TrimSpace(thinkTagRegex.ReplaceAllString(text, ""))
}

// CleanResponse strips reasoning tags and markdown code fence lines.
func CleanResponse(text string) string {
	cleaned := StripThinkTags(text)
	cleaned = codeFenceRegex.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}
