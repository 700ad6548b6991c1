package app

import (
	"context"
	"fmt"

	"band_booking_service/internal/chat/domain"
	"band_booking_service/internal/chat/repository"
	"band_booking_service/pkg"

	"github.com/google/uuid"
)

// ConversationUseCase mediates every read path of the chat core and enforces
// ownership before touching the store. The principal is the already
// authenticated caller; band-side access is resolved through the member
// directory.
type ConversationUseCase struct {
	convRepo  repository.ConversationRepository
	directory repository.MemberDirectory
}

// NewConversationUseCase init conversation use case
func NewConversationUseCase(convRepo repository.ConversationRepository, directory repository.MemberDirectory) *ConversationUseCase {
	return &ConversationUseCase{
		convRepo:  convRepo,
		directory: directory,
	}
}

// StartConversation creates the conversation between the principal (user
// side) and the band if it does not exist yet, and returns its primitives.
func (uc *ConversationUseCase) StartConversation(ctx context.Context, principal domain.Principal, bandID string) (*domain.ConversationRecord, error) {
	userID, err := domain.NewUserID(principal.ID)
	if err != nil {
		return nil, err
	}
	bID, err := domain.NewBandID(bandID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.convRepo.GetByParticipants(ctx, userID, bID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		rec := existing.Record()
		return &rec, nil
	}

	conv := domain.NewConversation(domain.ConversationID(uuid.New().String()), userID, bID, nil)
	created, err := uc.convRepo.Create(ctx, conv)
	if err != nil {
		return nil, err
	}
	if created == nil {
		// lost a create race, the other writer's row wins
		existing, err = uc.convRepo.GetByParticipants(ctx, userID, bID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("%w: user %s band %s", domain.ErrUnableToCreateConversation, principal.ID, bandID)
		}
		created = existing
	}

	rec := created.Record()
	return &rec, nil
}

// GetHistory returns the conversation view for the principal's side. Viewing
// history marks the messages addressed to that side as read first, read
// receipts are a side effect of viewing, not a separate call.
func (uc *ConversationUseCase) GetHistory(ctx context.Context, principal domain.Principal, conversationID string) (*domain.ConversationView, error) {
	convID, err := domain.NewConversationID(conversationID)
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

	sideID, err := uc.resolveSide(ctx, principal, conv)
	if err != nil {
		return nil, err
	}

	if err := uc.convRepo.MarkRead(ctx, convID, sideID); err != nil {
		return nil, err
	}

	view, err := uc.convRepo.GetView(ctx, convID, sideID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		// deleted between the ownership check and the projection
		return nil, fmt.Errorf("%w: %s", domain.ErrConversationNotFound, conversationID)
	}
	return view, nil
}

// ListForUser returns the user's chat list. No delegation: the principal must
// be that exact user.
func (uc *ConversationUseCase) ListForUser(ctx context.Context, principal domain.Principal, userID string) ([]domain.ConversationSummary, error) {
	if principal.ID != userID {
		return nil, fmt.Errorf("%w: user list of %s", domain.ErrNotConversationOwner, userID)
	}
	uID, err := domain.NewUserID(userID)
	if err != nil {
		return nil, err
	}
	return uc.convRepo.ListForUser(ctx, uID)
}

// ListForBand returns the band's chat list for any member of the band.
func (uc *ConversationUseCase) ListForBand(ctx context.Context, principal domain.Principal, bandID string) ([]domain.ConversationSummary, error) {
	bID, err := domain.NewBandID(bandID)
	if err != nil {
		return nil, err
	}
	ok, err := uc.isBandMember(ctx, principal.ID, bandID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: band list of %s", domain.ErrNotConversationOwner, bandID)
	}
	return uc.convRepo.ListForBand(ctx, bID)
}

// DeleteConversation removes a conversation and all of its messages.
// Administrative only, never exposed to end users.
func (uc *ConversationUseCase) DeleteConversation(ctx context.Context, principal domain.Principal, conversationID string) error {
	if principal.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: delete requires admin", domain.ErrNotConversationOwner)
	}
	convID, err := domain.NewConversationID(conversationID)
	if err != nil {
		return err
	}
	removed, err := uc.convRepo.Delete(ctx, convID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s", domain.ErrConversationNotFound, conversationID)
	}
	return nil
}

// resolveSide maps the principal onto the side of the conversation it owns
// and returns that side's participant id. The user side matches directly; the
// band side matches for the band entity itself or any of its members.
func (uc *ConversationUseCase) resolveSide(ctx context.Context, principal domain.Principal, conv *domain.Conversation) (string, error) {
	if principal.ID == conv.UserID.String() {
		return conv.UserID.String(), nil
	}
	if principal.ID == conv.BandID.String() {
		return conv.BandID.String(), nil
	}

	members, err := uc.directory.GetBandMembers(ctx, conv.BandID.String())
	if err != nil {
		return "", err
	}
	if pkg.Contains(members, principal.ID) {
		return conv.BandID.String(), nil
	}
	return "", fmt.Errorf("%w: principal %s", domain.ErrNotConversationOwner, principal.ID)
}

func (uc *ConversationUseCase) isBandMember(ctx context.Context, principalID, bandID string) (bool, error) {
	if principalID == bandID {
		return true, nil
	}
	members, err := uc.directory.GetBandMembers(ctx, bandID)
	if err != nil {
		return false, err
	}
	return pkg.Contains(members, principalID), nil
}
