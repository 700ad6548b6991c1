package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIdentifiers_ValidUUIDRoundTrip(t *testing.T) {
	raw := uuid.New().String()

	convID, err := NewConversationID(raw)
	assert.NoError(t, err)
	assert.Equal(t, raw, convID.String())

	msgID, err := NewMessageID(raw)
	assert.NoError(t, err)
	assert.Equal(t, raw, msgID.String())

	participantID, err := NewParticipantID(raw)
	assert.NoError(t, err)
	assert.Equal(t, raw, participantID.String())

	userID, err := NewUserID(raw)
	assert.NoError(t, err)
	assert.Equal(t, raw, userID.String())

	bandID, err := NewBandID(raw)
	assert.NoError(t, err)
	assert.Equal(t, raw, bandID.String())
}

func TestIdentifiers_RejectNonUUID(t *testing.T) {
	for _, raw := range []string{"", "42", "not-a-uuid", "123e4567-e89b-12d3-a456"} {
		_, err := NewConversationID(raw)
		assert.ErrorIs(t, err, ErrInvalidIDFormat, raw)

		_, err = NewMessageID(raw)
		assert.ErrorIs(t, err, ErrInvalidIDFormat, raw)

		_, err = NewParticipantID(raw)
		assert.ErrorIs(t, err, ErrInvalidIDFormat, raw)

		_, err = NewUserID(raw)
		assert.ErrorIs(t, err, ErrInvalidIDFormat, raw)

		_, err = NewBandID(raw)
		assert.ErrorIs(t, err, ErrInvalidIDFormat, raw)
	}
}
