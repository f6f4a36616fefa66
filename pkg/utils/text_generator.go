package utils

import "context"

// Prompt is a role-tagged request for a text-generation model.
type Prompt struct {
	SystemText string
	UserText   string
	// SchemaHint is the draft-07 JSON Schema of the expected reply. Neither
	// generator forwards it: the prompt text carries a reply example, and the
	// response extractor checks each trip against the same item schema.
	SchemaHint string
	// JSONMode asks the backend for a JSON-only response when it supports one.
	JSONMode bool
}

// TextGeneratorInterface is implemented by every LLM backend.
type TextGeneratorInterface interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
	Provider() string
	Close() error
}

// GenerationOptions tunes sampling for all providers.
type GenerationOptions struct {
	Temperature     float32
	MaxOutputTokens int32
}
