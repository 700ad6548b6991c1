package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"band_booking_service/internal/chat/domain"
)

// MemberDirectory exposes the user/band lookups the chat core needs from the
// relational side of the marketplace: band membership for band-side
// authorization, and participant summaries for chat views and lists.
type MemberDirectory interface {
	GetBandMembers(ctx context.Context, bandID string) ([]string, error)
	GetUserSummary(ctx context.Context, userID string) (*domain.UserSummary, error)
	GetBandSummary(ctx context.Context, bandID string) (*domain.BandSummary, error)
}

type memberDirectory struct {
	db *pgxpool.Pool
}

// NewMemberDirectory create a MemberDirectory over the marketplace tables
func NewMemberDirectory(db *pgxpool.Pool) MemberDirectory {
	return &memberDirectory{db: db}
}

func (r *memberDirectory) GetBandMembers(ctx context.Context, bandID string) ([]string, error) {
	rows, err := r.db.Query(ctx, "SELECT user_id FROM band_members WHERE band_id = $1", bandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		members = append(members, id)
	}
	return members, rows.Err()
}

func (r *memberDirectory) GetUserSummary(ctx context.Context, userID string) (*domain.UserSummary, error) {
	row := r.db.QueryRow(ctx,
		"SELECT id, first_name, family_name, COALESCE(image_url, '') FROM users WHERE id = $1", userID)

	var user domain.UserSummary
	if err := row.Scan(&user.ID, &user.FirstName, &user.FamilyName, &user.ImageURL); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *memberDirectory) GetBandSummary(ctx context.Context, bandID string) (*domain.BandSummary, error) {
	row := r.db.QueryRow(ctx,
		"SELECT id, name, COALESCE(image_url, '') FROM bands WHERE id = $1", bandID)

	var band domain.BandSummary
	if err := row.Scan(&band.ID, &band.Name, &band.ImageURL); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &band, nil
}
