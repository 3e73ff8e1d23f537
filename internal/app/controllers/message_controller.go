package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/connecthub/manexis/internal/app/models/dto"
	"github.com/connecthub/manexis/internal/app/services"
	"github.com/connecthub/manexis/internal/middleware"
)

// MessageController handles conversations and direct messages
type MessageController struct {
	messageService *services.MessageService
	logger         zerolog.Logger
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService *services.MessageService, logger zerolog.Logger) *MessageController {
	return &MessageController{
		messageService: messageService,
		logger:         logger,
	}
}

// CreateConversation looks up or creates the conversation with a friend
// @Summary Open a conversation
// @Description Returns the conversation with a friend, creating it on first contact. Both users must be approved friends.
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateConversationRequest true "Friend to converse with"
// @Success 200 {object} dto.APIResponse{data=dto.ConversationResponse} "Conversation"
// @Failure 403 {object} dto.ErrorResponse "Users are not friends"
// @Router /conversations [post]
func (c *MessageController) CreateConversation(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateConversationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	conversation, err := c.messageService.GetOrCreateConversation(ctx.Request.Context(), userID, req.FriendID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(conversation))
}

// ListConversations returns the caller's inbox
// @Summary List conversations
// @Description Returns the caller's conversations ordered by latest activity, with peer, last message and unread count
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ConversationResponse} "Conversations"
// @Router /conversations [get]
func (c *MessageController) ListConversations(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	conversations, err := c.messageService.ListConversations(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(conversations))
}

// SendMessage posts a message into a conversation
// @Summary Send a message
// @Description Stores a message up to 2000 characters and pushes it to connected websocket clients
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Param request body dto.SendMessageRequest true "Message text"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse} "Stored message"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Router /conversations/{id}/messages [post]
func (c *MessageController) SendMessage(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	conversationID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	message, err := c.messageService.SendMessage(ctx.Request.Context(), userID, conversationID, req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

// GetMessages returns a page of a conversation's messages
// @Summary Get messages
// @Description Returns messages in ascending ID order. `after` is the polling cursor, `before` pages back through history. Reading marks the peer's messages as read.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Param after query int false "Only messages with an ID above this cursor"
// @Param before query int false "Only messages with an ID below this cursor"
// @Param limit query int false "Page size (max 100)" default(50)
// @Success 200 {object} dto.APIResponse{data=[]dto.MessageResponse} "Messages"
// @Failure 403 {object} dto.ErrorResponse "Not a participant"
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Router /conversations/{id}/messages [get]
func (c *MessageController) GetMessages(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	conversationID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))

	after, ok := queryID(ctx, "after")
	if !ok {
		return
	}
	before, ok := queryID(ctx, "before")
	if !ok {
		return
	}

	messages, err := c.messageService.GetMessages(ctx.Request.Context(), userID, conversationID,
		after, before, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}

// GetFriendInfo returns the chat-pane header for a friend
// @Summary Get friend info
// @Description Returns the peer header shown above a chat. Friends only.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Friend's user ID"
// @Success 200 {object} dto.APIResponse{data=dto.FriendInfoResponse} "Friend info"
// @Failure 403 {object} dto.ErrorResponse "Users are not friends"
// @Router /friends/{id}/info [get]
func (c *MessageController) GetFriendInfo(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	friendID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	info, err := c.messageService.GetFriendInfo(ctx.Request.Context(), userID, friendID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}
