package domain

import "time"

// UserSummary is the user participant info shown alongside a conversation.
type UserSummary struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	FamilyName string `json:"family_name"`
	ImageURL   string `json:"image_url,omitempty"`
}

// BandSummary is the band participant info shown alongside a conversation.
type BandSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// ConversationView is the read projection of a full conversation: header,
// ordered messages, participant summaries and the unread count relative to
// the requesting side. Computed on read, never persisted.
type ConversationView struct {
	ID                  string          `json:"id"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	Messages            []MessageRecord `json:"messages"`
	User                UserSummary     `json:"user"`
	Band                BandSummary     `json:"band"`
	UnreadMessagesCount int             `json:"unread_messages_count"`
}

// ConversationSummary is one row of a participant's chat list: the most
// recent message plus both participant summaries, ordered by recency.
type ConversationSummary struct {
	ID                  string         `json:"id"`
	UpdatedAt           time.Time      `json:"updated_at"`
	LastMessage         *MessageRecord `json:"last_message,omitempty"`
	User                UserSummary    `json:"user"`
	Band                BandSummary    `json:"band"`
	UnreadMessagesCount int            `json:"unread_messages_count"`
}
