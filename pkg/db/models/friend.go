package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/pkg/enums"
)

// Friend is an undirected relationship stored as a canonical pair: the member
// with the lower uuid always occupies Member1ID, so the unique index on the
// pair is sufficient to rule out mirrored duplicates. RequestedByID records
// which side initiated. Rejected rows are retained to block re-requesting.
type Friend struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Member1ID     uuid.UUID          `gorm:"column:member1_id;type:uuid;not null;uniqueIndex:idx_friends_pair"`
	Member2ID     uuid.UUID          `gorm:"column:member2_id;type:uuid;not null;uniqueIndex:idx_friends_pair"`
	RequestedByID uuid.UUID          `gorm:"column:requested_by_id;type:uuid;not null"`
	Status        enums.FriendStatus `gorm:"column:status;type:friend_status;not null"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
