package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFriendshipInvolves(t *testing.T) {
	f := &Friendship{UserID: 1, FriendID: 2}

	assert.True(t, f.Involves(1))
	assert.True(t, f.Involves(2))
	assert.False(t, f.Involves(3))
}

func TestFriendshipOtherSide(t *testing.T) {
	f := &Friendship{UserID: 1, FriendID: 2}

	assert.Equal(t, int64(2), f.OtherSide(1))
	assert.Equal(t, int64(1), f.OtherSide(2))
}
