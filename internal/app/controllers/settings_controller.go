package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/connecthub/manexis/internal/app/models/dto"
	"github.com/connecthub/manexis/internal/app/services"
	"github.com/connecthub/manexis/internal/middleware"
)

// SettingsController handles account settings and deactivation
type SettingsController struct {
	settingsService *services.SettingsService
	logger          zerolog.Logger
}

// NewSettingsController creates a new SettingsController
func NewSettingsController(settingsService *services.SettingsService, logger zerolog.Logger) *SettingsController {
	return &SettingsController{
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetSettings returns the caller's settings
// @Summary Get settings
// @Description Returns the caller's settings, creating defaults on first access
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SettingsResponse} "Settings"
// @Router /settings [get]
func (c *SettingsController) GetSettings(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	settings, err := c.settingsService.GetSettings(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(settings))
}

// UpdateSettings partially updates the caller's settings
// @Summary Update settings
// @Description Updates only the provided fields and returns the new settings
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateSettingsRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.SettingsResponse} "Updated settings"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /settings [put]
func (c *SettingsController) UpdateSettings(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	settings, err := c.settingsService.UpdateSettings(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(settings))
}

// DeactivateAccount deactivates the caller's account
// @Summary Deactivate account
// @Description Marks the account inactive and revokes all sessions. Requires the current password.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeactivateAccountRequest true "Current password"
// @Success 200 {object} dto.APIResponse "Account deactivated"
// @Failure 401 {object} dto.ErrorResponse "Wrong password"
// @Router /settings/deactivate [post]
func (c *SettingsController) DeactivateAccount(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.DeactivateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.settingsService.DeactivateAccount(ctx.Request.Context(), userID, req.Password); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("account deactivated"))
}
