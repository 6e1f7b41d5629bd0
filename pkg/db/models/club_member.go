package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/pkg/enums"
)

// ClubMember links a member with a club and captures their role/state.
// The unique index keeps at most one row per (club, member) pair; withdrawn
// rows are reset in place on re-invitation rather than duplicated.
type ClubMember struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClubID      uuid.UUID             `gorm:"column:club_id;type:uuid;not null;uniqueIndex:idx_club_members_pair"`
	MemberID    uuid.UUID             `gorm:"column:member_id;type:uuid;not null;uniqueIndex:idx_club_members_pair"`
	Role        enums.ClubRole        `gorm:"column:role;type:club_role;not null"`
	State       enums.MembershipState `gorm:"column:state;type:membership_state;not null"`
	InvitedByID *uuid.UUID            `gorm:"column:invited_by_id;type:uuid"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
