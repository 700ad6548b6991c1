package repository

import (
	"context"
	"fmt"

	"band_booking_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConversationRepository is the durable store contract of the chat core.
// Operations that can hit a uniqueness violation or an absent row soft-fail
// with nil/false instead of an error, so callers make the create-vs-reuse
// decision themselves.
type ConversationRepository interface {
	// Create persists a new conversation header (no messages). Returns nil
	// when the (user, band) pair already has a conversation.
	Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)
	// AppendMessage persists one message under the conversation.
	// markAsReadOnArrival inserts the message already flagged read.
	AppendMessage(ctx context.Context, conversationID domain.ConversationID, msg *domain.Message, markAsReadOnArrival bool) error
	// MarkRead flips IsRead on every message addressed to readerID.
	MarkRead(ctx context.Context, conversationID domain.ConversationID, readerID string) error
	// GetByID reconstructs the conversation with messages in chronological
	// order. Returns nil when absent.
	GetByID(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error)
	// GetView builds the read projection with participant summaries and the
	// unread count relative to viewerID. Returns nil when absent.
	GetView(ctx context.Context, id domain.ConversationID, viewerID string) (*domain.ConversationView, error)
	// GetByParticipants returns the at-most-one conversation of the pair.
	GetByParticipants(ctx context.Context, userID domain.UserID, bandID domain.BandID) (*domain.Conversation, error)
	// ListForUser returns the user's chat list ordered by recency.
	ListForUser(ctx context.Context, userID domain.UserID) ([]domain.ConversationSummary, error)
	// ListForBand returns the band's chat list ordered by recency.
	ListForBand(ctx context.Context, bandID domain.BandID) ([]domain.ConversationSummary, error)
	// Delete removes the conversation and its messages. False when absent.
	Delete(ctx context.Context, id domain.ConversationID) (bool, error)
}

const (
	conversationColl = "conversations"
	messageColl      = "conversation_messages"
)

type mongoConversationRepository struct {
	convColl  *mongo.Collection
	msgColl   *mongo.Collection
	directory MemberDirectory
}

// NewMongoConversationRepository create a ConversationRepository backed by mongo
func NewMongoConversationRepository(db *mongo.Database, directory MemberDirectory) ConversationRepository {
	return &mongoConversationRepository{
		convColl:  db.Collection(conversationColl),
		msgColl:   db.Collection(messageColl),
		directory: directory,
	}
}

// EnsureConversationIndexes creates the unique (user_id, band_id) index that
// backs the one-conversation-per-pair invariant, plus the message sort index.
func EnsureConversationIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(conversationColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "band_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create conversation index: %w", err)
	}
	_, err = db.Collection(messageColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create message index: %w", err)
	}
	return nil
}

func (r *mongoConversationRepository) Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	rec := conv.Record()
	if _, err := r.convColl.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, nil
		}
		return nil, err
	}
	return conv, nil
}

func (r *mongoConversationRepository) AppendMessage(ctx context.Context, conversationID domain.ConversationID, msg *domain.Message, markAsReadOnArrival bool) error {
	rec := msg.Record(conversationID)
	if markAsReadOnArrival {
		rec.IsRead = true
	}
	if _, err := r.msgColl.InsertOne(ctx, rec); err != nil {
		return err
	}
	_, err := r.convColl.UpdateOne(ctx,
		bson.M{"_id": conversationID.String()},
		bson.M{"$set": bson.M{"updated_at": msg.Timestamp}},
	)
	return err
}

func (r *mongoConversationRepository) MarkRead(ctx context.Context, conversationID domain.ConversationID, readerID string) error {
	_, err := r.msgColl.UpdateMany(ctx,
		unreadMessagesFilter(conversationID.String(), readerID),
		markReadUpdate(),
	)
	return err
}

func (r *mongoConversationRepository) GetByID(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	rec, err := r.findConversation(ctx, bson.M{"_id": id.String()})
	if err != nil || rec == nil {
		return nil, err
	}
	return domain.ConversationFromRecord(*rec)
}

func (r *mongoConversationRepository) GetView(ctx context.Context, id domain.ConversationID, viewerID string) (*domain.ConversationView, error) {
	rec, err := r.findConversation(ctx, bson.M{"_id": id.String()})
	if err != nil || rec == nil {
		return nil, err
	}

	user, err := r.userSummary(ctx, rec.UserID)
	if err != nil {
		return nil, err
	}
	band, err := r.bandSummary(ctx, rec.BandID)
	if err != nil {
		return nil, err
	}

	unread := 0
	for _, m := range rec.Messages {
		if m.RecipientID == viewerID && !m.IsRead {
			unread++
		}
	}

	return &domain.ConversationView{
		ID:                  rec.ID,
		CreatedAt:           rec.CreatedAt,
		UpdatedAt:           rec.UpdatedAt,
		Messages:            rec.Messages,
		User:                user,
		Band:                band,
		UnreadMessagesCount: unread,
	}, nil
}

func (r *mongoConversationRepository) GetByParticipants(ctx context.Context, userID domain.UserID, bandID domain.BandID) (*domain.Conversation, error) {
	rec, err := r.findConversation(ctx, bson.M{"user_id": userID.String(), "band_id": bandID.String()})
	if err != nil || rec == nil {
		return nil, err
	}
	return domain.ConversationFromRecord(*rec)
}

func (r *mongoConversationRepository) ListForUser(ctx context.Context, userID domain.UserID) ([]domain.ConversationSummary, error) {
	user, err := r.userSummary(ctx, userID.String())
	if err != nil {
		return nil, err
	}

	recs, err := r.listConversations(ctx, bson.M{"user_id": userID.String()})
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.ConversationSummary, 0, len(recs))
	for _, rec := range recs {
		band, err := r.bandSummary(ctx, rec.BandID)
		if err != nil {
			return nil, err
		}
		summary, err := r.buildSummary(ctx, rec, userID.String())
		if err != nil {
			return nil, err
		}
		summary.User = user
		summary.Band = band
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (r *mongoConversationRepository) ListForBand(ctx context.Context, bandID domain.BandID) ([]domain.ConversationSummary, error) {
	band, err := r.bandSummary(ctx, bandID.String())
	if err != nil {
		return nil, err
	}

	recs, err := r.listConversations(ctx, bson.M{"band_id": bandID.String()})
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.ConversationSummary, 0, len(recs))
	for _, rec := range recs {
		user, err := r.userSummary(ctx, rec.UserID)
		if err != nil {
			return nil, err
		}
		summary, err := r.buildSummary(ctx, rec, bandID.String())
		if err != nil {
			return nil, err
		}
		summary.User = user
		summary.Band = band
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (r *mongoConversationRepository) Delete(ctx context.Context, id domain.ConversationID) (bool, error) {
	res, err := r.convColl.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return false, err
	}
	if res.DeletedCount == 0 {
		return false, nil
	}
	// conversation deletion removes all of its messages
	if _, err := r.msgColl.DeleteMany(ctx, bson.M{"conversation_id": id.String()}); err != nil {
		return true, err
	}
	return true, nil
}

// findConversation loads one conversation header plus its ordered messages.
// Returns nil when no header matches the filter.
func (r *mongoConversationRepository) findConversation(ctx context.Context, filter bson.M) (*domain.ConversationRecord, error) {
	var rec domain.ConversationRecord
	if err := r.convColl.FindOne(ctx, filter).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	cur, err := r.msgColl.Find(ctx, bson.M{"conversation_id": rec.ID}, messagesChronological())
	if err != nil {
		return nil, err
	}
	if err := cur.All(ctx, &rec.Messages); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *mongoConversationRepository) listConversations(ctx context.Context, filter bson.M) ([]domain.ConversationRecord, error) {
	opts := options.Find().SetSort(bson.M{"updated_at": -1})
	cur, err := r.convColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var recs []domain.ConversationRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *mongoConversationRepository) buildSummary(ctx context.Context, rec domain.ConversationRecord, viewerID string) (domain.ConversationSummary, error) {
	summary := domain.ConversationSummary{
		ID:        rec.ID,
		UpdatedAt: rec.UpdatedAt,
	}

	var last domain.MessageRecord
	opts := options.FindOne().SetSort(bson.M{"timestamp": -1})
	err := r.msgColl.FindOne(ctx, bson.M{"conversation_id": rec.ID}, opts).Decode(&last)
	switch err {
	case nil:
		summary.LastMessage = &last
	case mongo.ErrNoDocuments:
		// conversation started, nothing sent yet
	default:
		return summary, err
	}

	unread, err := r.msgColl.CountDocuments(ctx, unreadMessagesFilter(rec.ID, viewerID))
	if err != nil {
		return summary, err
	}
	summary.UnreadMessagesCount = int(unread)
	return summary, nil
}

// unreadMessagesFilter selects the messages addressed to readerID that are
// still unread. MarkRead updates through this filter, so a second pass over
// the same conversation matches nothing.
func unreadMessagesFilter(conversationID, readerID string) bson.M {
	return bson.M{
		"conversation_id": conversationID,
		"recipient_id":    readerID,
		"is_read":         false,
	}
}

func markReadUpdate() bson.M {
	return bson.M{"$set": bson.M{"is_read": true}}
}

// messagesChronological sorts by the fixed-width stored timestamp, ascending.
func messagesChronological() *options.FindOptions {
	return options.Find().SetSort(bson.M{"timestamp": 1})
}

// userSummary tolerates a missing directory row by falling back to the bare id,
// a chat list must not break because a profile row is gone.
func (r *mongoConversationRepository) userSummary(ctx context.Context, userID string) (domain.UserSummary, error) {
	user, err := r.directory.GetUserSummary(ctx, userID)
	if err != nil {
		return domain.UserSummary{}, err
	}
	if user == nil {
		return domain.UserSummary{ID: userID}, nil
	}
	return *user, nil
}

func (r *mongoConversationRepository) bandSummary(ctx context.Context, bandID string) (domain.BandSummary, error) {
	band, err := r.directory.GetBandSummary(ctx, bandID)
	if err != nil {
		return domain.BandSummary{}, err
	}
	if band == nil {
		return domain.BandSummary{ID: bandID}, nil
	}
	return *band, nil
}
