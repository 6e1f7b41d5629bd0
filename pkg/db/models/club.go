package models

import (
	"time"

	"github.com/google/uuid"
)

// Club represents a bounded group entity. LeaderID is the founding member and
// the single source of host authority; it is never mirrored into a
// ClubMember row. Clubs are toggled active/inactive, never hard-deleted while
// referenced by memberships or schedules.
type Club struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	LeaderID    uuid.UUID `gorm:"column:leader_id;type:uuid;not null"`
	Active      bool      `gorm:"column:active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
