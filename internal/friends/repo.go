package friends

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
	"github.com/clubmate-app/clubmate-backend/pkg/pagination"
)

// Repository exposes friend-relationship persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repo to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) friendRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByPair retrieves the relationship row for the unordered pair. Storage
// is canonical but the query stays symmetric over both physical orderings.
func (r *Repository) FindByPair(ctx context.Context, a, b uuid.UUID) (*models.Friend, error) {
	var friend models.Friend
	err := r.db.WithContext(ctx).
		Where("(member1_id = ? AND member2_id = ?) OR (member1_id = ? AND member2_id = ?)", a, b, b, a).
		First(&friend).Error
	if err != nil {
		return nil, err
	}
	return &friend, nil
}

// FindByID loads a relationship row by its id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Friend, error) {
	var friend models.Friend
	if err := r.db.WithContext(ctx).First(&friend, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &friend, nil
}

// Create persists a new relationship row.
func (r *Repository) Create(ctx context.Context, friend *models.Friend) error {
	return r.db.WithContext(ctx).Create(friend).Error
}

// TransitionStatus updates the row's status only when it still holds
// fromStatus, returning the number of rows changed.
func (r *Repository) TransitionStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus enums.FriendStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Friend{}).
		Where("id = ? AND status = ?", id, fromStatus).
		UpdateColumn("status", toStatus)
	return res.RowsAffected, res.Error
}

// ListAcceptedForMember returns a page of accepted relationships for the
// member joined with the other side's public profile.
func (r *Repository) ListAcceptedForMember(ctx context.Context, memberID uuid.UUID, params pagination.Params) ([]FriendDTO, string, error) {
	return r.listForMember(ctx, memberID, params, "friends.status = ?", enums.FriendStatusAccepted)
}

// ListPendingForMember returns a page of pending requests awaiting the
// member's response, so rows the member initiated are excluded.
func (r *Repository) ListPendingForMember(ctx context.Context, memberID uuid.UUID, params pagination.Params) ([]FriendDTO, string, error) {
	return r.listForMember(ctx, memberID, params,
		"friends.status = ? AND friends.requested_by_id <> ?", enums.FriendStatusPending, memberID)
}

func (r *Repository) listForMember(ctx context.Context, memberID uuid.UUID, params pagination.Params, condition string, args ...any) ([]FriendDTO, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	query := r.db.WithContext(ctx).
		Model(&models.Friend{}).
		Select("friends.*, members.id AS other_id, members.nickname AS other_nickname").
		Joins("JOIN members ON members.id = CASE WHEN friends.member1_id = ? THEN friends.member2_id ELSE friends.member1_id END", memberID).
		Where("friends.member1_id = ? OR friends.member2_id = ?", memberID, memberID).
		Where(condition, args...).
		Order("friends.created_at, friends.id").
		Limit(pagination.LimitWithBuffer(params.Limit))
	if cursor != nil {
		query = query.Where("(friends.created_at, friends.id) > (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []friendRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return friendsFromRows(rows), nextCursor, nil
}

// CountForPair reports how many rows exist for the unordered pair. Used by
// tests to assert the canonical storage never duplicates.
func (r *Repository) CountForPair(ctx context.Context, a, b uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Friend{}).
		Where("(member1_id = ? AND member2_id = ?) OR (member1_id = ? AND member2_id = ?)", a, b, b, a).
		Count(&count).Error
	return count, err
}
