package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripsync/pkg/utils"
)

const chatSystemText = "You are a friendly travel assistant. Answer briefly and helpfully."

type ChatServiceInterface interface {
	Reply(ctx context.Context, message string) (string, error)
}

// ChatService forwards a free-form message to the text generator and returns
// its plain-text answer.
type ChatService struct {
	generator utils.TextGeneratorInterface
	timeout   time.Duration
	logger    *zap.Logger
}

func NewChatService(generator utils.TextGeneratorInterface, timeout time.Duration, logger *zap.Logger) *ChatService {
	return &ChatService{generator: generator, timeout: timeout, logger: logger}
}

func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", utils.ErrEmptyMessage
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.Generate(ctx, utils.Prompt{
		SystemText: chatSystemText,
		UserText:   message,
	})
	if err != nil {
		s.logger.Warn("chat generation failed", zap.Error(err))
		if errors.Is(err, context.DeadlineExceeded) {
			return "", utils.NewGenerationError(utils.ErrUpstreamTimeout, "", err)
		}
		return "", utils.NewGenerationError(utils.ErrUpstreamFailure, "", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", utils.NewGenerationError(utils.ErrNoTextualOutput, text, nil)
	}
	return text, nil
}
