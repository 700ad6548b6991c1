package domain

import "time"

// Conversation is the durable thread of messages between exactly one user and
// one band. At most one conversation exists per (user, band) pair; that
// uniqueness is enforced by the store. The entity itself has no mutators,
// message append is a store-level operation.
type Conversation struct {
	ID        ConversationID
	UserID    UserID
	BandID    BandID
	Messages  []*Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConversationRecord is the flat primitive form of a Conversation header.
type ConversationRecord struct {
	ID        string          `bson:"_id" json:"id"`
	UserID    string          `bson:"user_id" json:"user_id"`
	BandID    string          `bson:"band_id" json:"band_id"`
	CreatedAt time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time       `bson:"updated_at" json:"updated_at"`
	Messages  []MessageRecord `bson:"-" json:"messages,omitempty"`
}

// NewConversation creates a conversation between a user and a band.
func NewConversation(id ConversationID, userID UserID, bandID BandID, messages []*Message) *Conversation {
	now := time.Now().UTC()
	return &Conversation{
		ID:        id,
		UserID:    userID,
		BandID:    bandID,
		Messages:  messages,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOwner reports whether participantID is either side of the conversation.
func (c *Conversation) IsOwner(participantID string) bool {
	return participantID == c.UserID.String() || participantID == c.BandID.String()
}

// ConversationFromRecord reconstructs a Conversation, messages included.
func ConversationFromRecord(rec ConversationRecord) (*Conversation, error) {
	id, err := NewConversationID(rec.ID)
	if err != nil {
		return nil, err
	}
	userID, err := NewUserID(rec.UserID)
	if err != nil {
		return nil, err
	}
	bandID, err := NewBandID(rec.BandID)
	if err != nil {
		return nil, err
	}
	messages := make([]*Message, 0, len(rec.Messages))
	for _, mr := range rec.Messages {
		m, err := MessageFromRecord(mr)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return &Conversation{
		ID:        id,
		UserID:    userID,
		BandID:    bandID,
		Messages:  messages,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

// Record flattens the conversation and its messages for persistence.
func (c *Conversation) Record() ConversationRecord {
	messages := make([]MessageRecord, 0, len(c.Messages))
	for _, m := range c.Messages {
		messages = append(messages, m.Record(c.ID))
	}
	return ConversationRecord{
		ID:        c.ID.String(),
		UserID:    c.UserID.String(),
		BandID:    c.BandID.String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Messages:  messages,
	}
}
