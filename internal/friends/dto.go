package friends

import (
	"time"

	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
)

// FriendDTO is a relationship row shaped from one member's point of view:
// Other* fields describe the opposite side of the pair.
type FriendDTO struct {
	ID            uuid.UUID          `json:"id"`
	OtherID       uuid.UUID          `json:"other_id"`
	OtherNickname string             `json:"other_nickname"`
	RequestedByID uuid.UUID          `json:"requested_by_id"`
	Status        enums.FriendStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
}

// RelationshipDTO is the raw pair shape returned from mutations, where no
// single point of view applies.
type RelationshipDTO struct {
	ID            uuid.UUID          `json:"id"`
	Member1ID     uuid.UUID          `json:"member1_id"`
	Member2ID     uuid.UUID          `json:"member2_id"`
	RequestedByID uuid.UUID          `json:"requested_by_id"`
	Status        enums.FriendStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type friendRow struct {
	models.Friend
	OtherID       uuid.UUID
	OtherNickname string
}

func FromModel(f *models.Friend) *RelationshipDTO {
	if f == nil {
		return nil
	}

	return &RelationshipDTO{
		ID:            f.ID,
		Member1ID:     f.Member1ID,
		Member2ID:     f.Member2ID,
		RequestedByID: f.RequestedByID,
		Status:        f.Status,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

func friendsFromRows(rows []friendRow) []FriendDTO {
	out := make([]FriendDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FriendDTO{
			ID:            row.ID,
			OtherID:       row.OtherID,
			OtherNickname: row.OtherNickname,
			RequestedByID: row.RequestedByID,
			Status:        row.Status,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out
}
