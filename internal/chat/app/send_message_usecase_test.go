package app

import (
	"context"
	"testing"

	"band_booking_service/internal/chat/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendMessageUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	conv, userID, bandID := newTestConversation(t)
	content := "are you free on the 14th?"

	mockRepo := new(MockConversationRepository)
	mockPusher := new(MockPusher)

	mockRepo.On("GetByID", ctx, conv.ID).Return(conv, nil)
	mockRepo.On("AppendMessage", ctx, conv.ID, mock.MatchedBy(func(msg *domain.Message) bool {
		return msg.Content == content && msg.Metadata == nil && !msg.IsRead
	}), false).Return(nil)
	mockPusher.On("Push", bandID, mock.Anything).Return(true)

	uc := NewSendMessageUseCase(mockRepo, mockPusher)
	msg, err := uc.Execute(ctx, conv.ID.String(), userID, bandID, content)

	assert.NoError(t, err)
	assert.Equal(t, content, msg.Content)
	mockRepo.AssertExpectations(t)
	mockPusher.AssertExpectations(t)
}

// A disconnected recipient is simply skipped, the message stays durable.
func TestSendMessageUseCase_Execute_RecipientOffline(t *testing.T) {
	ctx := context.Background()
	conv, userID, bandID := newTestConversation(t)

	mockRepo := new(MockConversationRepository)
	mockPusher := new(MockPusher)

	mockRepo.On("GetByID", ctx, conv.ID).Return(conv, nil)
	mockRepo.On("AppendMessage", ctx, conv.ID, mock.Anything, false).Return(nil)
	mockPusher.On("Push", bandID, mock.Anything).Return(false)

	uc := NewSendMessageUseCase(mockRepo, mockPusher)
	_, err := uc.Execute(ctx, conv.ID.String(), userID, bandID, "anyone there?")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestSendMessageUseCase_Execute_InvalidActors(t *testing.T) {
	ctx := context.Background()
	conv, userID, _ := newTestConversation(t)
	outsiderID := uuid.New().String()

	mockRepo := new(MockConversationRepository)

	mockRepo.On("GetByID", ctx, conv.ID).Return(conv, nil)

	uc := NewSendMessageUseCase(mockRepo, nil)
	_, err := uc.Execute(ctx, conv.ID.String(), userID, outsiderID, "hello")

	assert.ErrorIs(t, err, domain.ErrInvalidMessageActors)
	mockRepo.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendMessageUseCase_Execute_ConversationNotFound(t *testing.T) {
	ctx := context.Background()
	convID := uuid.New().String()

	mockRepo := new(MockConversationRepository)

	mockRepo.On("GetByID", ctx, domain.ConversationID(convID)).Return(nil, nil)

	uc := NewSendMessageUseCase(mockRepo, nil)
	_, err := uc.Execute(ctx, convID, uuid.New().String(), uuid.New().String(), "hello")

	assert.ErrorIs(t, err, domain.ErrConversationNotFound)
}

func TestSendMessageUseCase_Execute_EmptyContent(t *testing.T) {
	ctx := context.Background()
	conv, userID, bandID := newTestConversation(t)

	mockRepo := new(MockConversationRepository)

	mockRepo.On("GetByID", ctx, conv.ID).Return(conv, nil)

	uc := NewSendMessageUseCase(mockRepo, nil)
	_, err := uc.Execute(ctx, conv.ID.String(), userID, bandID, "")

	assert.ErrorIs(t, err, domain.ErrInvalidMessageContent)
	mockRepo.AssertNotCalled(t, "AppendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
