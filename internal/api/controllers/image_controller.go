package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripsync/internal/services"
	"tripsync/pkg/utils"
)

type ImageController struct {
	imageService services.ImageServiceInterface
}

func NewImageController(imageService services.ImageServiceInterface) *ImageController {
	return &ImageController{imageService: imageService}
}

// GetImageURLHandler handles GET /api/get-image-url?destination=&activity=&id=
func (ic *ImageController) GetImageURLHandler(c *gin.Context) {
	destination := strings.TrimSpace(c.Query("destination"))
	if destination == "" {
		utils.RespondError(c, http.StatusBadRequest, utils.ErrMissingDestination.Error())
		return
	}

	resp := ic.imageService.ImageURL(c.Request.Context(),
		destination,
		strings.TrimSpace(c.Query("activity")),
		strings.TrimSpace(c.Query("id")))

	c.JSON(http.StatusOK, resp)
}
