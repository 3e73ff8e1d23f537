package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/connecthub/manexis/internal/app/services"
	"github.com/connecthub/manexis/internal/middleware"
)

// MediaController streams stored uploads to authorized viewers
type MediaController struct {
	mediaService *services.MediaService
	logger       zerolog.Logger
}

// NewMediaController creates a new MediaController
func NewMediaController(mediaService *services.MediaService, logger zerolog.Logger) *MediaController {
	return &MediaController{
		mediaService: mediaService,
		logger:       logger,
	}
}

// ServeFile streams a stored upload
// @Summary Serve an uploaded file
// @Description Streams a stored upload. Post images and photos of friends-only profiles are restricted to the owner and their friends.
// @Tags media
// @Produce octet-stream
// @Security BearerAuth
// @Param path path string true "Stored file path"
// @Success 200 {file} binary "File contents"
// @Failure 403 {object} dto.ErrorResponse "Viewer may not access this file"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /media/{path} [get]
func (c *MediaController) ServeFile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	file, err := c.mediaService.Open(ctx.Request.Context(), userID, ctx.Param("path"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Type", file.MimeType)
	ctx.Header("Content-Length", strconv.FormatInt(file.Size, 10))
	ctx.File(file.FullPath)
}
