package models

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is a club event owned by the club; mutations are gated on the
// manager-or-host check upstream of this layer.
type Schedule struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClubID      uuid.UUID `gorm:"column:club_id;type:uuid;not null;index"`
	Title       string    `gorm:"column:title;not null"`
	Place       *string   `gorm:"column:place"`
	StartsAt    time.Time `gorm:"column:starts_at;not null"`
	EndsAt      time.Time `gorm:"column:ends_at;not null"`
	CreatedByID uuid.UUID `gorm:"column:created_by_id;type:uuid;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
