package models

import (
	"time"

	"github.com/google/uuid"
)

// ChecklistItem is a per-schedule task; cascade-deleted with its schedule.
type ChecklistItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ScheduleID uuid.UUID `gorm:"column:schedule_id;type:uuid;not null;index"`
	Content    string    `gorm:"column:content;not null"`
	Done       bool      `gorm:"column:done;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
