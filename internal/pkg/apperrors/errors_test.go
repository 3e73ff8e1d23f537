package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwrapsToSentinel(t *testing.T) {
	err := NewBadRequestError("content is required")

	assert.True(t, errors.Is(err, ErrBadRequest))
	assert.Equal(t, "content is required", err.Error())

	err = NewForbiddenError("only the author can delete this post")
	assert.True(t, errors.Is(err, ErrPermissionDenied))

	err = NewResourceNotFoundError("no such thing")
	assert.True(t, errors.Is(err, ErrResourceNotFound))
}

func TestCustomErrorThroughWrapping(t *testing.T) {
	inner := NewBadRequestError("bad input")
	wrapped := fmt.Errorf("handling request: %w", inner)

	assert.True(t, errors.Is(wrapped, ErrBadRequest))
}

func TestCustomErrorMessageFallsBackToSentinel(t *testing.T) {
	err := &CustomError{Err: ErrUserNotFound}
	assert.Equal(t, ErrUserNotFound.Error(), err.Error())
}
