package websocket

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ParticipantChecker reports whether a user belongs to a conversation
type ParticipantChecker interface {
	IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error)
}

// Handler upgrades authenticated requests to conversation WebSocket
// subscriptions
type Handler struct {
	hub          *Hub
	participants ParticipantChecker
	logger       zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, participants ParticipantChecker, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:          hub,
		participants: participants,
		logger:       logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to a conversation over WebSocket
// @Description Upgrades the HTTP connection to a WebSocket that receives new messages of the conversation as they arrive
// @Tags messages, websocket
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {object} gin.H "Invalid conversation ID"
// @Failure 401 {object} gin.H "Unauthorized: JWT token missing or invalid"
// @Failure 403 {object} gin.H "Forbidden: user is not a participant of the conversation"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /conversations/{id}/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	conversationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	userIDValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	userID, ok := userIDValue.(int64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	isParticipant, err := h.participants.IsParticipant(c.Request.Context(), conversationID, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("conversationID", conversationID).
			Int64("userID", userID).
			Msg("Failed to check conversation participant")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check participant status"})
		return
	}

	if !isParticipant {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a participant of this conversation"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("conversationID", conversationID).
			Int64("userID", userID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:            h.hub,
		conn:           conn,
		send:           make(chan []byte, 256),
		userID:         userID,
		conversationID: conversationID,
		logger:         h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("conversationID", conversationID).
		Int64("userID", userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
