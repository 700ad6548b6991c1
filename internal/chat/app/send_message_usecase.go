package app

import (
	"context"
	"fmt"

	"band_booking_service/internal/chat/domain"
	"band_booking_service/internal/chat/repository"

	"github.com/google/uuid"
)

// SendMessageUseCase persists an inbound chat message and then consults the
// live gateway, opportunistically, to push it to a connected recipient.
type SendMessageUseCase struct {
	convRepo repository.ConversationRepository
	pusher   Pusher
}

// NewSendMessageUseCase init send message use case
func NewSendMessageUseCase(convRepo repository.ConversationRepository, pusher Pusher) *SendMessageUseCase {
	return &SendMessageUseCase{
		convRepo: convRepo,
		pusher:   pusher,
	}
}

// Execute validates the actors against the conversation, appends the message
// and pushes it to the recipient if connected. A disconnected recipient is
// skipped, the message stays durable and surfaces on the next history fetch.
func (uc *SendMessageUseCase) Execute(ctx context.Context, conversationID, senderID, recipientID, content string) (*domain.Message, error) {
	convID, err := domain.NewConversationID(conversationID)
	if err != nil {
		return nil, err
	}
	sender, err := domain.NewParticipantID(senderID)
	if err != nil {
		return nil, err
	}
	recipient, err := domain.NewParticipantID(recipientID)
	if err != nil {
		return nil, err
	}

	conv, err := uc.convRepo.GetByID(ctx, convID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrConversationNotFound, conversationID)
	}
	if !conv.IsOwner(senderID) || !conv.IsOwner(recipientID) {
		return nil, fmt.Errorf("%w: sender %s recipient %s", domain.ErrInvalidMessageActors, senderID, recipientID)
	}

	msg, err := domain.NewTextMessage(domain.MessageID(uuid.New().String()), sender, recipient, content)
	if err != nil {
		return nil, err
	}
	if err := uc.convRepo.AppendMessage(ctx, convID, msg, false); err != nil {
		return nil, err
	}

	if uc.pusher != nil {
		uc.pusher.Push(recipientID, notifyResponse(convID, msg))
	}
	return msg, nil
}

// notifyResponse is the outbound payload pushed to a recipient connection.
func notifyResponse(conversationID domain.ConversationID, msg *domain.Message) domain.WSResponse {
	rec := msg.Record(conversationID)
	payload := map[string]interface{}{
		"conversation_id": rec.ConversationID,
		"message_id":      rec.ID,
		"sender_id":       rec.SenderID,
		"timestamp":       rec.Timestamp,
	}
	if rec.Content != "" {
		payload["message"] = rec.Content
	}
	if rec.Metadata != nil {
		payload["metadata"] = rec.Metadata
	}
	return domain.WSResponse{
		Action:  string(domain.NotifyMessage),
		Success: true,
		Payload: payload,
	}
}
