package domain

import "errors"

var (
	// ErrInvalidIDFormat - identifier is not a valid UUID
	ErrInvalidIDFormat = errors.New("invalid id format")
	// ErrInvalidMessageContent - message carries neither text content nor booking metadata
	ErrInvalidMessageContent = errors.New("invalid message content")
	// ErrNotConversationOwner - principal is not an owner of the requested conversation
	ErrNotConversationOwner = errors.New("not owner of requested conversation")
	// ErrConversationNotFound - conversation does not exist
	ErrConversationNotFound = errors.New("conversation not found")
	// ErrInvalidMessageActors - sender or recipient is not a participant of the conversation
	ErrInvalidMessageActors = errors.New("invalid message actors")
	// ErrUnableToCreateConversation - persistence rejected the conversation create
	ErrUnableToCreateConversation = errors.New("unable to create conversation")
)
