package app

import (
	"context"

	"band_booking_service/internal/chat/domain"

	"github.com/stretchr/testify/mock"
)

// MockConversationRepository Mock ConversationRepository
type MockConversationRepository struct {
	mock.Mock
}

// Create mock create conversation
func (m *MockConversationRepository) Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	args := m.Called(ctx, conv)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

// AppendMessage mock append message
func (m *MockConversationRepository) AppendMessage(ctx context.Context, conversationID domain.ConversationID, msg *domain.Message, markAsReadOnArrival bool) error {
	args := m.Called(ctx, conversationID, msg, markAsReadOnArrival)
	return args.Error(0)
}

// MarkRead mock mark messages read
func (m *MockConversationRepository) MarkRead(ctx context.Context, conversationID domain.ConversationID, readerID string) error {
	args := m.Called(ctx, conversationID, readerID)
	return args.Error(0)
}

// GetByID mock find conversation by id
func (m *MockConversationRepository) GetByID(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

// GetView mock build conversation view
func (m *MockConversationRepository) GetView(ctx context.Context, id domain.ConversationID, viewerID string) (*domain.ConversationView, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ConversationView), args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByParticipants mock find conversation by pair
func (m *MockConversationRepository) GetByParticipants(ctx context.Context, userID domain.UserID, bandID domain.BandID) (*domain.Conversation, error) {
	args := m.Called(ctx, userID, bandID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Conversation), args.Error(1)
	}
	return nil, args.Error(1)
}

// ListForUser mock list user conversations
func (m *MockConversationRepository) ListForUser(ctx context.Context, userID domain.UserID) ([]domain.ConversationSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ConversationSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

// ListForBand mock list band conversations
func (m *MockConversationRepository) ListForBand(ctx context.Context, bandID domain.BandID) ([]domain.ConversationSummary, error) {
	args := m.Called(ctx, bandID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ConversationSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete mock delete conversation
func (m *MockConversationRepository) Delete(ctx context.Context, id domain.ConversationID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockMemberDirectory Mock MemberDirectory
type MockMemberDirectory struct {
	mock.Mock
}

// GetBandMembers mock band membership lookup
func (m *MockMemberDirectory) GetBandMembers(ctx context.Context, bandID string) ([]string, error) {
	args := m.Called(ctx, bandID)
	if args.Get(0) != nil {
		return args.Get(0).([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// GetUserSummary mock user summary lookup
func (m *MockMemberDirectory) GetUserSummary(ctx context.Context, userID string) (*domain.UserSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.UserSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

// GetBandSummary mock band summary lookup
func (m *MockMemberDirectory) GetBandSummary(ctx context.Context, bandID string) (*domain.BandSummary, error) {
	args := m.Called(ctx, bandID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.BandSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPusher Mock Pusher
type MockPusher struct {
	mock.Mock
}

// Push mock push to participant
func (m *MockPusher) Push(participantID string, resp domain.WSResponse) bool {
	args := m.Called(participantID, resp)
	return args.Bool(0)
}
