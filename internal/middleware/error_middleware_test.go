package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connecthub/manexis/internal/app/models/dto"
	"github.com/connecthub/manexis/internal/pkg/apperrors"
)

func runHandleAPIError(t *testing.T, err error) (int, *dto.ErrorDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/", nil)

	HandleAPIError(c, err)

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp.Error
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, 401, dto.ErrorCodeInvalidCredentials},
		{"expired token", apperrors.ErrTokenExpired, 401, dto.ErrorCodeExpiredToken},
		{"revoked token", apperrors.ErrTokenRevoked, 401, dto.ErrorCodeInvalidToken},
		{"email not verified", apperrors.ErrEmailNotVerified, 403, dto.ErrorCodeEmailNotVerified},
		{"account inactive", apperrors.ErrAccountInactive, 403, dto.ErrorCodeAccountInactive},
		{"not friends", apperrors.ErrNotFriends, 403, dto.ErrorCodeForbidden},
		{"not participant", apperrors.ErrNotParticipant, 403, dto.ErrorCodeForbidden},
		{"permission denied", apperrors.ErrPermissionDenied, 403, dto.ErrorCodeForbidden},
		{"invalid email", apperrors.ErrInvalidEmail, 400, dto.ErrorCodeInvalidEmail},
		{"content too long", apperrors.ErrContentTooLong, 400, dto.ErrorCodeValidationFailed},
		{"empty message", apperrors.ErrEmptyMessage, 400, dto.ErrorCodeValidationFailed},
		{"cannot friend self", apperrors.ErrCannotFriendSelf, 400, dto.ErrorCodeBadRequest},
		{"email exists", apperrors.ErrEmailAlreadyExists, 409, dto.ErrorCodeResourceAlreadyExists},
		{"request already sent", apperrors.ErrFriendRequestSent, 409, dto.ErrorCodeConflict},
		{"request already received", apperrors.ErrFriendRequestReceived, 409, dto.ErrorCodeConflict},
		{"already friends", apperrors.ErrAlreadyFriends, 409, dto.ErrorCodeConflict},
		{"user not found", apperrors.ErrUserNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"post not found", apperrors.ErrPostNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"comment not found", apperrors.ErrCommentNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"conversation not found", apperrors.ErrConversationNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"friendship not found", apperrors.ErrFriendshipNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"file not found", apperrors.ErrFileNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"file too large", apperrors.ErrFileTooLarge, 413, dto.ErrorCodeValidationFailed},
		{"unsupported file type", apperrors.ErrUnsupportedFileType, 415, dto.ErrorCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := runHandleAPIError(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			require.NotNil(t, detail)
			assert.Equal(t, tt.wantCode, detail.Code)
		})
	}
}

func TestHandleAPIErrorWrappedErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), apperrors.ErrPostNotFound)
	status, detail := runHandleAPIError(t, wrapped)
	assert.Equal(t, 404, status)
	require.NotNil(t, detail)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, detail.Code)
}

func TestHandleAPIErrorHidesInternalErrors(t *testing.T) {
	status, detail := runHandleAPIError(t, errors.New("pq: connection refused"))
	assert.Equal(t, 500, status)
	require.NotNil(t, detail)
	assert.Equal(t, dto.ErrorCodeInternalServer, detail.Code)
	assert.NotContains(t, detail.Message, "connection refused")
}
