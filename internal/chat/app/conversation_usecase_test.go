package app

import (
	"context"
	"os"
	"testing"

	"band_booking_service/internal/chat/domain"
	"band_booking_service/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.SetNewNop()
	os.Exit(m.Run())
}

func newTestConversation(t *testing.T) (*domain.Conversation, string, string) {
	t.Helper()
	userID := uuid.New().String()
	bandID := uuid.New().String()
	conv := domain.NewConversation(
		domain.ConversationID(uuid.New().String()),
		domain.UserID(userID),
		domain.BandID(bandID),
		nil,
	)
	return conv, userID, bandID
}

func TestConversationUseCase_StartConversation_CreatesWhenAbsent(t *testing.T) {
	ctx := context.Background()
	conv, userID, bandID := newTestConversation(t)

	mockRepo := new(MockConversationRepository)
	mockDir := new(MockMemberDirectory)

	mockRepo.On("GetByParticipants", ctx, domain.UserID(userID), domain.BandID(bandID)).Return(nil, nil).Once()
	mockRepo.On("Create", ctx, mock.Anything).Return(conv, nil)

	uc := NewConversationUseCase(mockRepo, mockDir)
	rec, err := uc.StartConversation(ctx, domain.Principal{ID: userID, Role: domain.RoleClient}, bandID)

	assert.NoError(t, err)
	assert.Equal(t, userID, rec.UserID)
	assert.Equal(t, bandID, rec.BandID)
	assert.Empty(t, rec.Messages)
	mockRepo.AssertExpectations(t)
}

func TestConversationUseCase_StartConversation_ReusesExisting(t *testing.T) {
	ctx := context.Background()
	conv, userID, bandID := newTestConversation(t)

	mockRepo := new(MockConversationRepository)
	mockDir := new(MockMemberDirectory)

	mockRepo.On("GetByParticipants", ctx, domain.UserID(userID), domain.BandID(bandID)).Return(conv, nil)

	uc := NewConversationUseCase(mockRepo, mockDir)
	rec, err := uc.StartConversation(ctx, domain.Principal{ID: userID, Role: domain.RoleClient}, bandID)

	assert.NoError(t, err)
	assert.Equal(t, conv.ID.String(), rec.ID)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConversationUseCase_StartConversation_RejectsBadBandID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockConversationRepository)
	mockDir := new(MockMemberDirectory)

	uc := NewConversationUseCase(mockRepo, mockDir)
	_, err := uc.StartConversation(ctx, domain.Principal{ID: uuid.New().String()}, "not-a-uuid")

	assert.ErrorIs(t, err, domain.ErrInvalidIDFormat)
}

func TestConversationUseCase_GetHistory_UserSideMarksRead(t *testing.T) {
	ctx := context.Background()
	conv, userID, _ := newTestConversation(t)

	mockRepo := new(MockConversationRepository)
	mockDir := new(MockMemberDirectory)

	view := &domain.ConversationView{ID: conv.ID.String()}
	mockRepo.On("GetByID", ctx, conv.ID).Return(conv, nil)
	mockRepo.On("MarkRead", ctx, conv.ID, userID).Return(nil)
	mockRepo.On("GetView", ctx, conv.ID, userID).Return(view, nil)

	uc := NewConversationUseCase(mockRepo, mockDir)
	got, err := uc.GetHistory(ctx, domain.Principal{ID: userID, Role: domain.RoleClient}, conv.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, view, got)
	mockRepo.AssertExpectations(t)
}

// A band member who is not the conversation's user reads the band side:
// messages addressed to the band become read, the user side is untouched.
func TestConversationUseCase_GetHistory_BandMemberReadsBandSide(t *testing.T) {
	ctx := context.Background()
	conv, _, bandID := newTestConversation(t)
	memberID := uuid.New().String()

	mockRepo := new(MockConversationRepository)
	mockDir := new(MockMemberDirectory)

	view := &domain.ConversationView{ID: conv.ID.String()}
	mockRepo.On("GetByID", ctx, conv.ID).Return(conv, nil)
	mockDir.On("GetBandMembers", ctx, bandID).Return([]string{uuid.New().String(), memberID}, nil)
	mockRepo.On("MarkRead", ctx, conv.ID, bandID).Return(nil)
	mockRepo.On("GetView", ctx, conv.ID, bandID).Return(view, nil)

	uc := NewConversationUseCase(mockRepo, mockDir)
	got, err := uc.GetHistory(ctx, domain.Principal{ID: memberID, Role: domain.RoleMusician}, conv.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, view, got)
	mockRepo.AssertExpectations(t)
	mockDir.AssertExpectations(t)
}

// A principal outside the band's member list is rejected and no read state
// changes as a side effect.
func TestConversationUseCase_GetHistory_StrangerRejected(t *testing.T) {
	ctx := context.Background()
	conv, _, bandID := newTestConversation(t)
	strangerID := uuid.New().String()

	mockRepo := new(MockConversationRepository)
	mockDir := new(MockMemberDirectory)

	mockRepo.On("GetByID", ctx, conv.ID).Return(conv, nil)
	mockDir.On("GetBandMembers", ctx, bandID).Return([]string{uuid.New().String()}, nil)

	uc := NewConversationUseCase(mockRepo, mockDir)
	_, err := uc.GetHistory(ctx, domain.Principal{ID: strangerID, Role: domain.RoleMusician}, conv.ID.String())

	assert.ErrorIs(t, err, domain.ErrNotConversationOwner)
	mockRepo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
}

// The conversation can disappear between the ownership check and the view
// projection; the caller still gets a not-found error, never a nil view.
func TestConversationUseCase_GetHistory_DeletedDuringRead(t *testing.T) {
	ctx := context.Background()
	conv, userID, _ := newTestConversation(t)

	mockRepo := new(MockConversationRepository)
	mockDir := new(MockMemberDirectory)

	mockRepo.On("GetByID", ctx, conv.ID).Return(conv, nil)
	mockRepo.On("MarkRead", ctx, conv.ID, userID).Return(nil)
	mockRepo.On("GetView", ctx, conv.ID, userID).Return(nil, nil)

	uc := NewConversationUseCase(mockRepo, mockDir)
	view, err := uc.GetHistory(ctx, domain.Principal{ID: userID, Role: domain.RoleClient}, conv.ID.String())

	assert.ErrorIs(t, err, domain.ErrConversationNotFound)
	assert.Nil(t, view)
}

func TestConversationUseCase_GetHistory_NotFound(t *testing.T) {
	ctx := context.Background()
	convID := uuid.New().String()

	mockRepo := new(MockConversationRepository)
	mockDir := new(MockMemberDirectory)

	mockRepo.On("GetByID", ctx, domain.ConversationID(convID)).Return(nil, nil)

	uc := NewConversationUseCase(mockRepo, mockDir)
	_, err := uc.GetHistory(ctx, domain.Principal{ID: uuid.New().String()}, convID)

	assert.ErrorIs(t, err, domain.ErrConversationNotFound)
}

func TestConversationUseCase_ListForUser_NoDelegation(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	mockRepo := new(MockConversationRepository)
	mockDir := new(MockMemberDirectory)

	summaries := []domain.ConversationSummary{{ID: uuid.New().String()}}
	mockRepo.On("ListForUser", ctx, domain.UserID(userID)).Return(summaries, nil)

	uc := NewConversationUseCase(mockRepo, mockDir)

	got, err := uc.ListForUser(ctx, domain.Principal{ID: userID}, userID)
	assert.NoError(t, err)
	assert.Equal(t, summaries, got)

	_, err = uc.ListForUser(ctx, domain.Principal{ID: uuid.New().String()}, userID)
	assert.ErrorIs(t, err, domain.ErrNotConversationOwner)
}

func TestConversationUseCase_ListForBand_MembershipChecked(t *testing.T) {
	ctx := context.Background()
	bandID := uuid.New().String()
	memberID := uuid.New().String()

	mockRepo := new(MockConversationRepository)
	mockDir := new(MockMemberDirectory)

	summaries := []domain.ConversationSummary{{ID: uuid.New().String()}}
	mockDir.On("GetBandMembers", ctx, bandID).Return([]string{memberID}, nil)
	mockRepo.On("ListForBand", ctx, domain.BandID(bandID)).Return(summaries, nil)

	uc := NewConversationUseCase(mockRepo, mockDir)

	got, err := uc.ListForBand(ctx, domain.Principal{ID: memberID, Role: domain.RoleMusician}, bandID)
	assert.NoError(t, err)
	assert.Equal(t, summaries, got)
}

func TestConversationUseCase_ListForBand_StrangerRejected(t *testing.T) {
	ctx := context.Background()
	bandID := uuid.New().String()

	mockRepo := new(MockConversationRepository)
	mockDir := new(MockMemberDirectory)

	mockDir.On("GetBandMembers", ctx, bandID).Return([]string{uuid.New().String()}, nil)

	uc := NewConversationUseCase(mockRepo, mockDir)
	_, err := uc.ListForBand(ctx, domain.Principal{ID: uuid.New().String(), Role: domain.RoleMusician}, bandID)

	assert.ErrorIs(t, err, domain.ErrNotConversationOwner)
	mockRepo.AssertNotCalled(t, "ListForBand", mock.Anything, mock.Anything)
}

func TestConversationUseCase_DeleteConversation_AdminOnly(t *testing.T) {
	ctx := context.Background()
	convID := uuid.New().String()

	mockRepo := new(MockConversationRepository)
	mockDir := new(MockMemberDirectory)

	mockRepo.On("Delete", ctx, domain.ConversationID(convID)).Return(true, nil)

	uc := NewConversationUseCase(mockRepo, mockDir)

	err := uc.DeleteConversation(ctx, domain.Principal{ID: uuid.New().String(), Role: domain.RoleClient}, convID)
	assert.ErrorIs(t, err, domain.ErrNotConversationOwner)

	err = uc.DeleteConversation(ctx, domain.Principal{ID: uuid.New().String(), Role: domain.RoleAdmin}, convID)
	assert.NoError(t, err)
}

func TestConversationUseCase_DeleteConversation_Missing(t *testing.T) {
	ctx := context.Background()
	convID := uuid.New().String()

	mockRepo := new(MockConversationRepository)
	mockDir := new(MockMemberDirectory)

	mockRepo.On("Delete", ctx, domain.ConversationID(convID)).Return(false, nil)

	uc := NewConversationUseCase(mockRepo, mockDir)
	err := uc.DeleteConversation(ctx, domain.Principal{ID: uuid.New().String(), Role: domain.RoleAdmin}, convID)

	assert.ErrorIs(t, err, domain.ErrConversationNotFound)
}
