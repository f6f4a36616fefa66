package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripsync/internal/models/request_models"
	"tripsync/internal/models/response_models"
	"tripsync/internal/services"
	"tripsync/pkg/utils"
)

type ChatController struct {
	chatService services.ChatServiceInterface
	logger      *zap.Logger
}

func NewChatController(chatService services.ChatServiceInterface, logger *zap.Logger) *ChatController {
	return &ChatController{chatService: chatService, logger: logger}
}

// ChatHandler handles POST /api/chat.
func (cc *ChatController) ChatHandler(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleTripError(c, cc.logger, fmt.Errorf("%w: %v", utils.ErrEmptyMessage, err))
		return
	}

	reply, err := cc.chatService.Reply(c.Request.Context(), req.Message)
	if err != nil {
		utils.HandleTripError(c, cc.logger, err)
		return
	}

	c.JSON(http.StatusOK, response_models.ChatResponse{Success: true, Response: reply})
}
