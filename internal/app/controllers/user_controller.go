package controllers

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/connecthub/manexis/internal/app/models/dto"
	"github.com/connecthub/manexis/internal/app/services"
	"github.com/connecthub/manexis/internal/middleware"
	"github.com/connecthub/manexis/internal/pkg/helpers"
)

// UserController handles profile and user search operations
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// GetMe returns the caller's own profile
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Own profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me [get]
func (c *UserController) GetMe(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	profile, err := c.userService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// GetUser returns another user's profile
// @Summary Get a user's profile
// @Description Returns the full profile for public profiles, friends and self; a restricted view otherwise
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Profile (full or restricted)"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	targetID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	full, limited, err := c.userService.GetUserProfile(ctx.Request.Context(), userID, targetID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if full != nil {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(full))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(limited))
}

// UpdateProfile applies a partial profile update
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Router /users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	profile, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UploadProfilePhoto stores a new profile photo
// @Summary Upload a profile photo
// @Description Accepts a JPEG, PNG, GIF or WebP image up to 2MB
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Image file"
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Updated profile"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Failure 415 {object} dto.ErrorResponse "Unsupported file type"
// @Router /users/me/profile-photo [post]
func (c *UserController) UploadProfilePhoto(ctx *gin.Context) {
	c.uploadPhoto(ctx, c.userService.UpdateProfilePhoto)
}

// UploadCoverPhoto stores a new cover photo
// @Summary Upload a cover photo
// @Description Accepts a JPEG, PNG, GIF or WebP image up to 2MB
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Image file"
// @Success 200 {object} dto.APIResponse{data=dto.UserProfile} "Updated profile"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Failure 415 {object} dto.ErrorResponse "Unsupported file type"
// @Router /users/me/cover-photo [post]
func (c *UserController) UploadCoverPhoto(ctx *gin.Context) {
	c.uploadPhoto(ctx, c.userService.UpdateCoverPhoto)
}

func (c *UserController) uploadPhoto(ctx *gin.Context, update func(context.Context, int64, *multipart.FileHeader) (*dto.UserProfile, error)) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Image file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profile, err := update(ctx.Request.Context(), userID, fileHeader)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Photo upload failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// Search finds users by name or email
// @Summary Search users
// @Description Finds verified users matching the query term, annotated with the caller's relationship to each
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search term"
// @Param page query int false "Page (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.PaginatedResponse "Search results"
// @Failure 400 {object} dto.ErrorResponse "Missing search term"
// @Router /users/search [get]
func (c *UserController) Search(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	term := strings.TrimSpace(ctx.Query("q"))
	if term == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Search term is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	results, pagination, err := c.userService.SearchUsers(ctx.Request.Context(), userID, term, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      results,
		Pagination: pagination,
	}))
}
