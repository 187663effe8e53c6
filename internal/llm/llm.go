package llm

import "context"

// SummaryInput captures what the summary generator needs about the job and CV.
type SummaryInput struct {
	JobTitle       string
	JobDescription string
	CVText         string
}

// Summary is a generated professional summary tagged with provenance.
type Summary struct {
	Text      string
	Succeeded bool
}

// Client abstracts LLM providers for tailored summary generation.
type Client interface {
	GenerateSummary(ctx context.Context, input SummaryInput) (string, error)
}

// FallbackSummary is recorded when generation is skipped or fails.
const FallbackSummary = "Professional summary not generated."
