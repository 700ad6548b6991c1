package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newIDs() (MessageID, ParticipantID, ParticipantID) {
	return MessageID(uuid.New().String()),
		ParticipantID(uuid.New().String()),
		ParticipantID(uuid.New().String())
}

func TestNewTextMessage(t *testing.T) {
	id, sender, recipient := newIDs()

	msg, err := NewTextMessage(id, sender, recipient, "hello from the venue")

	assert.NoError(t, err)
	assert.Equal(t, "hello from the venue", msg.Content)
	assert.Nil(t, msg.Metadata)
	assert.False(t, msg.IsRead)
	assert.False(t, msg.IsBookingEvent())
	assert.WithinDuration(t, time.Now().UTC(), msg.Timestamp, time.Second)
}

func TestNewBookingMessage(t *testing.T) {
	id, sender, recipient := newIDs()
	bookingID := uuid.New().String()

	msg, err := NewBookingMessage(id, sender, recipient, bookingID)

	assert.NoError(t, err)
	assert.Empty(t, msg.Content)
	assert.Equal(t, bookingID, msg.Metadata.BookingID)
	assert.False(t, msg.IsRead)
	assert.True(t, msg.IsBookingEvent())
}

// A message must carry text content or metadata, never neither. The check
// holds for construction and for every reconstruction from storage.
func TestMessageContentInvariant(t *testing.T) {
	id, sender, recipient := newIDs()

	_, err := NewTextMessage(id, sender, recipient, "")
	assert.ErrorIs(t, err, ErrInvalidMessageContent)

	_, err = NewBookingMessage(id, sender, recipient, "")
	assert.ErrorIs(t, err, ErrInvalidMessageContent)

	_, err = MessageFromRecord(MessageRecord{
		ID:          id.String(),
		SenderID:    sender.String(),
		RecipientID: recipient.String(),
		Timestamp:   time.Now().UTC().Format(StoredTimeLayout),
	})
	assert.ErrorIs(t, err, ErrInvalidMessageContent)
}

func TestMessageRecordRoundTrip(t *testing.T) {
	id, sender, recipient := newIDs()
	convID := ConversationID(uuid.New().String())

	msg, err := NewTextMessage(id, sender, recipient, "see you saturday")
	assert.NoError(t, err)

	restored, err := MessageFromRecord(msg.Record(convID))
	assert.NoError(t, err)

	assert.Equal(t, msg.ID, restored.ID)
	assert.Equal(t, msg.SenderID, restored.SenderID)
	assert.Equal(t, msg.RecipientID, restored.RecipientID)
	assert.Equal(t, msg.Content, restored.Content)
	assert.Equal(t, msg.IsRead, restored.IsRead)
	// stored precision is milliseconds
	assert.WithinDuration(t, msg.Timestamp, restored.Timestamp, time.Millisecond)
}

func TestBookingMessageRecordRoundTrip(t *testing.T) {
	id, sender, recipient := newIDs()
	convID := ConversationID(uuid.New().String())
	bookingID := uuid.New().String()

	msg, err := NewBookingMessage(id, sender, recipient, bookingID)
	assert.NoError(t, err)

	rec := msg.Record(convID)
	assert.Equal(t, convID.String(), rec.ConversationID)

	restored, err := MessageFromRecord(rec)
	assert.NoError(t, err)
	assert.Equal(t, bookingID, restored.Metadata.BookingID)
	assert.Empty(t, restored.Content)
}

func TestMessageFromRecord_RejectsBadIdentifiers(t *testing.T) {
	_, sender, recipient := newIDs()

	_, err := MessageFromRecord(MessageRecord{
		ID:          "not-a-uuid",
		SenderID:    sender.String(),
		RecipientID: recipient.String(),
		Content:     "hi",
		Timestamp:   time.Now().UTC().Format(StoredTimeLayout),
	})
	assert.ErrorIs(t, err, ErrInvalidIDFormat)
}
