package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiTextGenerator implements TextGeneratorInterface using Google's Gemini models
type GeminiTextGenerator struct {
	client *genai.Client
	model  string
	opts   GenerationOptions
}

// NewGeminiTextGenerator creates a new Gemini client
func NewGeminiTextGenerator(ctx context.Context, apiKey, model string, opts GenerationOptions) (*GeminiTextGenerator, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTextGenerator{
		client: client,
		model:  model,
		opts:   opts,
	}, nil
}

func (g *GeminiTextGenerator) Generate(ctx context.Context, prompt Prompt) (string, error) {
	m := g.client.GenerativeModel(g.model)
	if prompt.JSONMode {
		m.ResponseMIMEType = "application/json"
	}
	if g.opts.Temperature > 0 {
		m.SetTemperature(g.opts.Temperature)
	}
	if g.opts.MaxOutputTokens > 0 {
		m.SetMaxOutputTokens(g.opts.MaxOutputTokens)
	}
	if prompt.SystemText != "" {
		m.SystemInstruction = genai.NewUserContent(genai.Text(prompt.SystemText))
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt.UserText))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	// The first candidate with any text wins; non-text parts are ignored.
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		if sb.Len() > 0 {
			break
		}
	}
	return sb.String(), nil
}

func (g *GeminiTextGenerator) Provider() string { return "gemini" }

func (g *GeminiTextGenerator) Close() error {
	return g.client.Close()
}
