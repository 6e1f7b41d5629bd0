package clubs

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
	"github.com/clubmate-app/clubmate-backend/pkg/pagination"
)

// MemberRepository exposes club-membership persistence operations.
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository binds the repo to the provided GORM connection.
func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// WithTx rebinds the repo to the provided transaction.
func (r *MemberRepository) WithTx(tx *gorm.DB) clubMemberRepository {
	if tx == nil {
		return r
	}
	return &MemberRepository{db: tx}
}

// GetByPair retrieves the membership row for (club, member), any state.
func (r *MemberRepository) GetByPair(ctx context.Context, clubID, memberID uuid.UUID) (*models.ClubMember, error) {
	var membership models.ClubMember
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND member_id = ?", clubID, memberID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// Create persists a new membership row.
func (r *MemberRepository) Create(ctx context.Context, membership *models.ClubMember) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

// Reset rewrites role/state/inviter on an existing row in place. Used when a
// withdrawn member is re-invited so the (club, member) pair never duplicates.
func (r *MemberRepository) Reset(ctx context.Context, id uuid.UUID, role enums.ClubRole, state enums.MembershipState, invitedBy *uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ClubMember{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"role":          role,
			"state":         state,
			"invited_by_id": invitedBy,
		}).Error
}

// TransitionState updates the row's state only when it still holds fromState,
// returning the number of rows changed. A zero result means a concurrent
// caller won the transition.
func (r *MemberRepository) TransitionState(ctx context.Context, id uuid.UUID, fromState, toState enums.MembershipState) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ClubMember{}).
		Where("id = ? AND state = ?", id, fromState).
		UpdateColumn("state", toState)
	return res.RowsAffected, res.Error
}

// Delete removes the membership row. Only invitation rejection deletes; every
// other exit is a soft state change.
func (r *MemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ClubMember{}, "id = ?", id).Error
}

// ListByClub returns a page of memberships for the club along with member
// metadata. The second return value is the cursor for the next page, empty
// when the roster is exhausted.
func (r *MemberRepository) ListByClub(ctx context.Context, clubID uuid.UUID, params pagination.Params) ([]ClubMemberDTO, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	query := r.db.WithContext(ctx).
		Model(&models.ClubMember{}).
		Select("club_members.*, members.nickname, members.email").
		Joins("JOIN members ON members.id = club_members.member_id").
		Where("club_members.club_id = ?", clubID).
		Order("club_members.created_at, club_members.id").
		Limit(pagination.LimitWithBuffer(params.Limit))
	if cursor != nil {
		query = query.Where(
			"(club_members.created_at, club_members.id) > (?, ?)",
			cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []clubMemberRow
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
	return clubMembersFromRows(rows), nextCursor, nil
}

// ListByMember returns the clubs a member belongs to along with club metadata.
func (r *MemberRepository) ListByMember(ctx context.Context, memberID uuid.UUID) ([]MembershipWithClub, error) {
	var rows []membershipWithClubRow
	err := r.db.WithContext(ctx).
		Model(&models.ClubMember{}).
		Select("club_members.*, clubs.name AS club_name, clubs.active AS club_active").
		Joins("JOIN clubs ON clubs.id = club_members.club_id").
		Where("club_members.member_id = ?", memberID).
		Order("clubs.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return membershipRowsToDTO(rows), nil
}
