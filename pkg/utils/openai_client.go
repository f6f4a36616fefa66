package utils

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAITextGenerator struct {
	client *openai.Client
	model  string
	opts   GenerationOptions
}

// NewOpenAITextGenerator builds a chat-completion client. baseURL may point at
// any OpenAI-compatible endpoint; empty keeps the public API.
func NewOpenAITextGenerator(apiKey, model, baseURL string, opts GenerationOptions) *OpenAITextGenerator {
	if model == "" {
		model = openai.GPT4oMini
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAITextGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		opts:   opts,
	}
}

func (o *OpenAITextGenerator) Generate(ctx context.Context, prompt Prompt) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if prompt.SystemText != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: prompt.SystemText,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt.UserText,
	})

	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: o.opts.Temperature,
		MaxTokens:   int(o.opts.MaxOutputTokens),
	}
	if prompt.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAITextGenerator) Provider() string { return "openai" }

func (o *OpenAITextGenerator) Close() error { return nil }
