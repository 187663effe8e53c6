package openrouter

import "fmt"

const systemPrompt = "You are a professional CV writer."

// BuildPrompt renders the user message for a tailored summary request.
func BuildPrompt(jobTitle, jobDescription, cvText string) string {
	return fmt.Sprintf(
		"Write a concise professional summary (3-4 sentences) tailoring this CV to the job below.\n\n"+
			"Job title: %s\n\nJob description:\n%s\n\nCV text:\n%s\n\n"+
			"Return only the summary text, no headings.",
		jobTitle, jobDescription, cvText,
	)
}
