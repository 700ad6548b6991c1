package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ConversationID identifies one user/band conversation thread.
type ConversationID string

// MessageID identifies a single message inside a conversation.
type MessageID string

// ParticipantID identifies either side of a conversation (a user or a band).
type ParticipantID string

// UserID identifies the user side of a conversation.
type UserID string

// BandID identifies the band side of a conversation.
type BandID string

// NewConversationID validates raw as a UUID and wraps it.
func NewConversationID(raw string) (ConversationID, error) {
	if err := checkUUID(raw); err != nil {
		return "", err
	}
	return ConversationID(raw), nil
}

// NewMessageID validates raw as a UUID and wraps it.
func NewMessageID(raw string) (MessageID, error) {
	if err := checkUUID(raw); err != nil {
		return "", err
	}
	return MessageID(raw), nil
}

// NewParticipantID validates raw as a UUID and wraps it.
func NewParticipantID(raw string) (ParticipantID, error) {
	if err := checkUUID(raw); err != nil {
		return "", err
	}
	return ParticipantID(raw), nil
}

// NewUserID validates raw as a UUID and wraps it.
func NewUserID(raw string) (UserID, error) {
	if err := checkUUID(raw); err != nil {
		return "", err
	}
	return UserID(raw), nil
}

// NewBandID validates raw as a UUID and wraps it.
func NewBandID(raw string) (BandID, error) {
	if err := checkUUID(raw); err != nil {
		return "", err
	}
	return BandID(raw), nil
}

func (id ConversationID) String() string { return string(id) }

func (id MessageID) String() string { return string(id) }

func (id ParticipantID) String() string { return string(id) }

func (id UserID) String() string { return string(id) }

func (id BandID) String() string { return string(id) }

func checkUUID(raw string) error {
	if _, err := uuid.Parse(raw); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidIDFormat, raw)
	}
	return nil
}
