package websocket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubParticipantChecker struct {
	isParticipant bool
	err           error
}

func (s *stubParticipantChecker) IsParticipant(_ context.Context, _, _ int64) (bool, error) {
	return s.isParticipant, s.err
}

func runHandleConnection(t *testing.T, checker ParticipantChecker, conversationID string, userID interface{}) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewHandler(NewHub(zerolog.Nop()), checker, zerolog.Nop())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/conversations/"+conversationID+"/ws", nil)
	c.Params = gin.Params{{Key: "id", Value: conversationID}}
	if userID != nil {
		c.Set("userID", userID)
	}

	handler.HandleConnection(c)
	return rec.Code
}

func TestHandleConnectionRejectsInvalidConversationID(t *testing.T) {
	code := runHandleConnection(t, &stubParticipantChecker{}, "abc", int64(1))
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHandleConnectionRequiresAuthentication(t *testing.T) {
	code := runHandleConnection(t, &stubParticipantChecker{}, "1", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestHandleConnectionRejectsNonParticipant(t *testing.T) {
	code := runHandleConnection(t, &stubParticipantChecker{isParticipant: false}, "1", int64(5))
	assert.Equal(t, http.StatusForbidden, code)
}

func TestHandleConnectionParticipantCheckFailure(t *testing.T) {
	checker := &stubParticipantChecker{err: errors.New("db down")}
	code := runHandleConnection(t, checker, "1", int64(5))
	assert.Equal(t, http.StatusInternalServerError, code)
}
