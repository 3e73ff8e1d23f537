package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair(t *testing.T) {
	tests := []struct {
		name       string
		a, b       int64
		wantFirst  int64
		wantSecond int64
	}{
		{name: "already ordered", a: 1, b: 2, wantFirst: 1, wantSecond: 2},
		{name: "reversed", a: 9, b: 3, wantFirst: 3, wantSecond: 9},
		{name: "large ids", a: 1000000, b: 42, wantFirst: 42, wantSecond: 1000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second := CanonicalPair(tt.a, tt.b)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantSecond, second)
		})
	}
}

func TestCanonicalPairIsSymmetric(t *testing.T) {
	a1, b1 := CanonicalPair(7, 12)
	a2, b2 := CanonicalPair(12, 7)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
}

func TestConversationHasParticipant(t *testing.T) {
	c := &Conversation{User1ID: 3, User2ID: 8}

	assert.True(t, c.HasParticipant(3))
	assert.True(t, c.HasParticipant(8))
	assert.False(t, c.HasParticipant(5))
}

func TestConversationPeerOf(t *testing.T) {
	c := &Conversation{User1ID: 3, User2ID: 8}

	assert.Equal(t, int64(8), c.PeerOf(3))
	assert.Equal(t, int64(3), c.PeerOf(8))
}
