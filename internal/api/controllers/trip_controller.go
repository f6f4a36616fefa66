package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tripsync/internal/models/request_models"
	"tripsync/internal/models/response_models"
	"tripsync/internal/services"
	"tripsync/pkg/utils"
)

type TripController struct {
	tripService       services.TripServiceInterface
	defaultMaxResults int
	maxResultsLimit   int
	logger            *zap.Logger
}

func NewTripController(tripService services.TripServiceInterface, defaultMaxResults, maxResultsLimit int, logger *zap.Logger) *TripController {
	return &TripController{
		tripService:       tripService,
		defaultMaxResults: defaultMaxResults,
		maxResultsLimit:   maxResultsLimit,
		logger:            logger,
	}
}

// GenerateTripHandler handles POST /api/generate-trip.
func (tc *TripController) GenerateTripHandler(c *gin.Context) {
	var body request_models.TripPreferenceRequest
	// an empty body means "all defaults"
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		utils.HandleTripError(c, tc.logger, fmt.Errorf("%w: %v", utils.ErrInvalidPreference, err))
		return
	}

	req, err := body.ToPreference(tc.defaultMaxResults, tc.maxResultsLimit)
	if err != nil {
		utils.HandleTripError(c, tc.logger, err)
		return
	}

	result, err := tc.tripService.GenerateTrips(c.Request.Context(), req)
	if err != nil {
		utils.HandleTripError(c, tc.logger, err)
		return
	}

	c.JSON(http.StatusOK, response_models.GenerateTripResponse{
		Success: true,
		Trips:   result.Trips,
		Cached:  result.Cached,
	})
}
