package app

import (
	"context"
	"fmt"

	"band_booking_service/internal/chat/domain"
	"band_booking_service/internal/chat/repository"

	"github.com/google/uuid"
)

// BookingEvent is the booking lifecycle notification consumed by the
// injector whenever a booking between a user and a band changes state.
type BookingEvent struct {
	UserID    string `json:"user_id"`
	BandID    string `json:"band_id"`
	BookingID string `json:"booking_id"`
}

// BookingEventInjector appends a structured booking message into the (user,
// band) conversation, creating the conversation lazily when none exists yet.
// Write only and fire-and-forget: no retry is attempted here, the event
// source must redeliver if needed.
type BookingEventInjector struct {
	convRepo repository.ConversationRepository
	pusher   Pusher
}

// NewBookingEventInjector init booking event injector
func NewBookingEventInjector(convRepo repository.ConversationRepository, pusher Pusher) *BookingEventInjector {
	return &BookingEventInjector{
		convRepo: convRepo,
		pusher:   pusher,
	}
}

// Handle injects one booking event into the pair's conversation.
func (inj *BookingEventInjector) Handle(ctx context.Context, ev BookingEvent) error {
	userID, err := domain.NewUserID(ev.UserID)
	if err != nil {
		return err
	}
	bandID, err := domain.NewBandID(ev.BandID)
	if err != nil {
		return err
	}

	// The sender is attributed to the user side regardless of which party
	// caused the booking transition.
	msg, err := domain.NewBookingMessage(
		domain.MessageID(uuid.New().String()),
		domain.ParticipantID(ev.UserID),
		domain.ParticipantID(ev.BandID),
		ev.BookingID,
	)
	if err != nil {
		return err
	}

	conv, err := inj.convRepo.GetByParticipants(ctx, userID, bandID)
	if err != nil {
		return err
	}
	if conv == nil {
		conv = domain.NewConversation(domain.ConversationID(uuid.New().String()), userID, bandID, nil)
		created, err := inj.convRepo.Create(ctx, conv)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrUnableToCreateConversation, err)
		}
		if created == nil {
			return fmt.Errorf("%w: user %s band %s", domain.ErrUnableToCreateConversation, ev.UserID, ev.BandID)
		}
	}

	if err := inj.convRepo.AppendMessage(ctx, conv.ID, msg, false); err != nil {
		return err
	}

	if inj.pusher != nil {
		inj.pusher.Push(ev.BandID, notifyResponse(conv.ID, msg))
	}
	return nil
}
