package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/connecthub/manexis/internal/app/models/dto"
	"github.com/connecthub/manexis/internal/app/services"
	"github.com/connecthub/manexis/internal/middleware"
)

// FriendController handles the friend request lifecycle
type FriendController struct {
	friendService *services.FriendService
	logger        zerolog.Logger
}

// NewFriendController creates a new FriendController
func NewFriendController(friendService *services.FriendService, logger zerolog.Logger) *FriendController {
	return &FriendController{
		friendService: friendService,
		logger:        logger,
	}
}

// SendRequest sends a friend request
// @Summary Send a friend request
// @Description Creates a pending request. Answers distinguish an existing friendship, a request already sent, and a request already received.
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendFriendRequestRequest true "Target user"
// @Success 201 {object} dto.APIResponse "Request sent"
// @Failure 400 {object} dto.ErrorResponse "Cannot friend yourself"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Edge already exists"
// @Router /friends/requests [post]
func (c *FriendController) SendRequest(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.SendFriendRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.friendService.SendRequest(ctx.Request.Context(), userID, req.FriendID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("Friend request sent."))
}

// AcceptRequest accepts a pending request
// @Summary Accept a friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Requesting user's ID"
// @Success 200 {object} dto.APIResponse "Request accepted"
// @Failure 404 {object} dto.ErrorResponse "No pending request from this user"
// @Router /friends/requests/{id}/accept [post]
func (c *FriendController) AcceptRequest(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	requesterID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.friendService.AcceptRequest(ctx.Request.Context(), userID, requesterID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Friend request accepted."))
}

// DeclineRequest declines a pending request
// @Summary Decline a friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Requesting user's ID"
// @Success 200 {object} dto.APIResponse "Request declined"
// @Failure 404 {object} dto.ErrorResponse "No pending request from this user"
// @Router /friends/requests/{id}/decline [post]
func (c *FriendController) DeclineRequest(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	requesterID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.friendService.DeclineRequest(ctx.Request.Context(), userID, requesterID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Friend request declined."))
}

// CancelRequest withdraws a request the caller sent
// @Summary Cancel a sent friend request
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Target user's ID"
// @Success 200 {object} dto.APIResponse "Request cancelled"
// @Failure 404 {object} dto.ErrorResponse "No pending request to this user"
// @Router /friends/requests/{id} [delete]
func (c *FriendController) CancelRequest(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	friendID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.friendService.CancelRequest(ctx.Request.Context(), userID, friendID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Friend request cancelled."))
}

// RemoveFriend unfriends a user
// @Summary Remove a friend
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Friend's user ID"
// @Success 200 {object} dto.APIResponse "Friend removed"
// @Failure 403 {object} dto.ErrorResponse "Users are not friends"
// @Failure 404 {object} dto.ErrorResponse "No friendship with this user"
// @Router /friends/{id} [delete]
func (c *FriendController) RemoveFriend(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	friendID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.friendService.RemoveFriend(ctx.Request.Context(), userID, friendID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Friend removed."))
}

// ListFriends lists the caller's friends
// @Summary List friends
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.FriendResponse} "Friends"
// @Router /friends [get]
func (c *FriendController) ListFriends(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	friends, err := c.friendService.ListFriends(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(friends))
}

// ListReceivedRequests lists requests awaiting the caller's answer
// @Summary List received friend requests
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.FriendResponse} "Pending received requests"
// @Router /friends/requests/received [get]
func (c *FriendController) ListReceivedRequests(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	requests, err := c.friendService.ListPendingReceived(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// ListSentRequests lists the caller's open requests
// @Summary List sent friend requests
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.FriendResponse} "Pending sent requests"
// @Router /friends/requests/sent [get]
func (c *FriendController) ListSentRequests(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	requests, err := c.friendService.ListPendingSent(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// GetRelationship reports the edge between the caller and a user
// @Summary Get the relationship with a user
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param id path int true "Other user's ID"
// @Success 200 {object} dto.APIResponse{data=dto.RelationshipStatusResponse} "Relationship state"
// @Router /friends/{id}/status [get]
func (c *FriendController) GetRelationship(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	otherID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	status, err := c.friendService.GetRelationship(ctx.Request.Context(), userID, otherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}
