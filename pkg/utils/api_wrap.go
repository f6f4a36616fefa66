package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripsync/internal/models/response_models"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func TraceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: TraceID(c),
	})
}

// HandleTripError maps a pipeline error onto the trip endpoint's error
// contract. Raw model text is attached for parse and schema failures.
func HandleTripError(c *gin.Context, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	message := "Failed to generate trips"

	switch {
	case errors.Is(err, ErrInvalidPreference), errors.Is(err, ErrMissingDestination), errors.Is(err, ErrEmptyMessage):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, ErrUpstreamTimeout):
		status = http.StatusGatewayTimeout
		message = "The trip generator took too long to respond"
	case errors.Is(err, ErrNoTextualOutput):
		status = http.StatusBadGateway
		message = "The trip generator returned no text"
	case errors.Is(err, ErrExtractionFailed):
		status = http.StatusBadGateway
		message = "Failed to parse trips from the generator response"
	case errors.Is(err, ErrSchemaEcho):
		status = http.StatusBadGateway
		message = "The trip generator returned a schema instead of trips"
	case errors.Is(err, ErrUpstreamFailure):
		status = http.StatusBadGateway
		message = "The trip generator is unavailable"
	}

	body := response_models.TripErrorResponse{
		Success: false,
		Error:   message,
		Kind:    ErrorKind(err),
		TraceID: TraceID(c),
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) && (errors.Is(err, ErrExtractionFailed) || errors.Is(err, ErrSchemaEcho)) {
		body.Raw = genErr.RawText
	}

	if status >= http.StatusInternalServerError {
		logger.Error("trip generation failed",
			zap.String("trace_id", body.TraceID),
			zap.String("kind", body.Kind),
			zap.Error(err))
	}
	c.AbortWithStatusJSON(status, body)
}
