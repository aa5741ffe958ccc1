//go:build unit

package conversation_test

import (
	"strings"
	"testing"
	"time"

	"rx-exchange/internal/domain/conversation"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sentAt = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

func TestStatusAdvance(t *testing.T) {
	tests := []struct {
		from, to, want conversation.Status
		changed        bool
	}{
		{conversation.StatusSent, conversation.StatusDelivered, conversation.StatusDelivered, true},
		{conversation.StatusSent, conversation.StatusRead, conversation.StatusRead, true},
		{conversation.StatusDelivered, conversation.StatusRead, conversation.StatusRead, true},
		{conversation.StatusRead, conversation.StatusDelivered, conversation.StatusRead, false},
		{conversation.StatusRead, conversation.StatusSent, conversation.StatusRead, false},
		{conversation.StatusDelivered, conversation.StatusDelivered, conversation.StatusDelivered, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			got, changed := tt.from.Advance(tt.to)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.changed, changed)
		})
	}

	_, err := conversation.ParseStatus("seen")
	assert.ErrorIs(t, err, conversation.ErrInvalidStatus)
}

func TestNewMessage(t *testing.T) {
	conv, sender := uuid.New(), uuid.New()

	t.Run("basic success case", func(t *testing.T) {
		m, err := conversation.NewMessage(ulid.Make(), conv, sender, "  Can you ship by Friday?  ", sentAt, 1)
		require.NoError(t, err)
		assert.Equal(t, "Can you ship by Friday?", m.Content())
		assert.Equal(t, conversation.StatusSent, m.Status())
		assert.False(t, m.IsSystem())
	})

	t.Run("content validation", func(t *testing.T) {
		_, err := conversation.NewMessage(ulid.Make(), conv, sender, "   ", sentAt, 1)
		assert.ErrorIs(t, err, conversation.ErrEmptyContent)

		_, err = conversation.NewMessage(ulid.Make(), conv, sender, strings.Repeat("x", conversation.MaxContentLength+1), sentAt, 1)
		assert.ErrorIs(t, err, conversation.ErrContentTooLong)
	})

	t.Run("status changes never go backward", func(t *testing.T) {
		m, err := conversation.NewMessage(ulid.Make(), conv, sender, "hello", sentAt, 1)
		require.NoError(t, err)

		read, changed := m.WithStatus(conversation.StatusRead)
		assert.True(t, changed)
		back, changed := read.WithStatus(conversation.StatusDelivered)
		assert.False(t, changed)
		assert.Equal(t, conversation.StatusRead, back.Status())
		assert.Equal(t, conversation.StatusSent, m.Status())
	})

	t.Run("system sender", func(t *testing.T) {
		m, err := conversation.NewMessage(ulid.Make(), conv, conversation.SystemSenderID, "Exchange accepted", sentAt, 1)
		require.NoError(t, err)
		assert.True(t, m.IsSystem())
	})
}

func TestConversation(t *testing.T) {
	seeker, provider := uuid.New(), uuid.New()
	c, err := conversation.NewConversation(uuid.New(), seeker, provider, "Amoxicillin", sentAt)
	require.NoError(t, err)

	assert.True(t, c.IsParticipant(seeker))
	assert.True(t, c.IsParticipant(provider))
	assert.False(t, c.IsParticipant(uuid.New()))
	assert.Equal(t, provider, c.Counterpart(seeker))
	assert.Equal(t, seeker, c.Counterpart(provider))

	_, err = conversation.NewConversation(uuid.New(), seeker, seeker, "Amoxicillin", sentAt)
	assert.ErrorIs(t, err, conversation.ErrMissingParticipant)
}
