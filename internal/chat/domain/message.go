package domain

import (
	"fmt"
	"time"
)

// StoredTimeLayout is the persisted timestamp form. Fixed width UTC so the
// lexicographic order of stored values matches chronological order.
const StoredTimeLayout = "2006-01-02T15:04:05.000Z"

// BookingMetadata is the structured payload of a booking-event message.
type BookingMetadata struct {
	BookingID     string `bson:"booking_id" json:"booking_id"`
	BookingStatus string `bson:"booking_status,omitempty" json:"booking_status,omitempty"`
	EventName     string `bson:"event_name,omitempty" json:"event_name,omitempty"`
	EventDate     string `bson:"event_date,omitempty" json:"event_date,omitempty"`
	Venue         string `bson:"venue,omitempty" json:"venue,omitempty"`
	City          string `bson:"city,omitempty" json:"city,omitempty"`
}

// Message is one unit of conversation content, either free text or a
// booking event. It must carry content or metadata, never neither.
type Message struct {
	ID          MessageID
	SenderID    ParticipantID
	RecipientID ParticipantID
	Content     string
	Metadata    *BookingMetadata
	Timestamp   time.Time
	IsRead      bool
}

// MessageRecord is the flat primitive form of a Message used for persistence.
type MessageRecord struct {
	ID             string           `bson:"_id" json:"id"`
	ConversationID string           `bson:"conversation_id" json:"conversation_id"`
	SenderID       string           `bson:"sender_id" json:"sender_id"`
	RecipientID    string           `bson:"recipient_id" json:"recipient_id"`
	Content        string           `bson:"content,omitempty" json:"content,omitempty"`
	Metadata       *BookingMetadata `bson:"metadata,omitempty" json:"metadata,omitempty"`
	Timestamp      string           `bson:"timestamp" json:"timestamp"`
	IsRead         bool             `bson:"is_read" json:"is_read"`
}

// NewTextMessage creates a plain text message, unread, timestamped now.
func NewTextMessage(id MessageID, senderID, recipientID ParticipantID, content string) (*Message, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: empty text message", ErrInvalidMessageContent)
	}
	return &Message{
		ID:          id,
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		Timestamp:   time.Now().UTC(),
	}, nil
}

// NewBookingMessage creates a booking-event message carrying metadata only.
func NewBookingMessage(id MessageID, senderID, recipientID ParticipantID, bookingID string) (*Message, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("%w: booking message without booking id", ErrInvalidMessageContent)
	}
	return &Message{
		ID:          id,
		SenderID:    senderID,
		RecipientID: recipientID,
		Metadata:    &BookingMetadata{BookingID: bookingID},
		Timestamp:   time.Now().UTC(),
	}, nil
}

// MessageFromRecord reconstructs a Message from its persisted form. The
// content-or-metadata invariant is re-checked on every reconstruction.
func MessageFromRecord(rec MessageRecord) (*Message, error) {
	if rec.Content == "" && rec.Metadata == nil {
		return nil, fmt.Errorf("%w: message %s has neither content nor metadata", ErrInvalidMessageContent, rec.ID)
	}
	id, err := NewMessageID(rec.ID)
	if err != nil {
		return nil, err
	}
	senderID, err := NewParticipantID(rec.SenderID)
	if err != nil {
		return nil, err
	}
	recipientID, err := NewParticipantID(rec.RecipientID)
	if err != nil {
		return nil, err
	}
	ts, err := time.Parse(StoredTimeLayout, rec.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("parse message timestamp: %w", err)
	}
	return &Message{
		ID:          id,
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     rec.Content,
		Metadata:    rec.Metadata,
		Timestamp:   ts,
		IsRead:      rec.IsRead,
	}, nil
}

// Record flattens the message for persistence under the given conversation.
func (m *Message) Record(conversationID ConversationID) MessageRecord {
	return MessageRecord{
		ID:             m.ID.String(),
		ConversationID: conversationID.String(),
		SenderID:       m.SenderID.String(),
		RecipientID:    m.RecipientID.String(),
		Content:        m.Content,
		Metadata:       m.Metadata,
		Timestamp:      m.Timestamp.UTC().Format(StoredTimeLayout),
		IsRead:         m.IsRead,
	}
}

// IsBookingEvent reports whether the message is an injected booking event.
func (m *Message) IsBookingEvent() bool {
	return m.Metadata != nil
}
