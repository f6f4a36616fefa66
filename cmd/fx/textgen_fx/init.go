// cmd/fx/textgen_fx/init.go
package textgen_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripsync/internal/config"
	"tripsync/pkg/utils"
)

var Module = fx.Provide(ProvideTextGenerator)

// ProvideTextGenerator creates the LLM client selected by llm.provider.
func ProvideTextGenerator(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.TextGeneratorInterface, error) {
	llm := cfg.LLM
	if llm.APIKey == "" {
		return nil, fmt.Errorf("no API key configured for llm provider %q (set LLM_API_KEY or %s_API_KEY)", llm.Provider, envPrefix(llm.Provider))
	}

	opts := utils.GenerationOptions{
		Temperature:     llm.Temperature,
		MaxOutputTokens: llm.MaxOutputTokens,
	}

	logger.Info("initializing text generator",
		zap.String("provider", llm.Provider),
		zap.String("model", llm.Model),
		zap.Duration("timeout", llm.Timeout))

	var (
		gen utils.TextGeneratorInterface
		err error
	)
	switch llm.Provider {
	case "openai":
		gen = utils.NewOpenAITextGenerator(llm.APIKey, llm.Model, llm.BaseURL, opts)
	case "gemini":
		gen, err = utils.NewGeminiTextGenerator(context.Background(), llm.APIKey, llm.Model, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s. Use 'openai' or 'gemini'", llm.Provider)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return gen.Close()
		},
	})
	return gen, nil
}

func envPrefix(provider string) string {
	if provider == "openai" {
		return "OPENAI"
	}
	return "GEMINI"
}
