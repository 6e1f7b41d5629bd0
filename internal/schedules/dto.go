package schedules

import (
	"time"

	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
)

// ScheduleDTO is the transport shape for a club event.
type ScheduleDTO struct {
	ID          uuid.UUID `json:"id"`
	ClubID      uuid.UUID `json:"club_id"`
	Title       string    `json:"title"`
	Place       *string   `json:"place,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	CreatedByID uuid.UUID `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChecklistItemDTO is the transport shape for a schedule task.
type ChecklistItemDTO struct {
	ID         uuid.UUID `json:"id"`
	ScheduleID uuid.UUID `json:"schedule_id"`
	Content    string    `json:"content"`
	Done       bool      `json:"done"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromModel(s *models.Schedule) *ScheduleDTO {
	if s == nil {
		return nil
	}

	return &ScheduleDTO{
		ID:          s.ID,
		ClubID:      s.ClubID,
		Title:       s.Title,
		Place:       s.Place,
		StartsAt:    s.StartsAt,
		EndsAt:      s.EndsAt,
		CreatedByID: s.CreatedByID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func FromModels(list []models.Schedule) []ScheduleDTO {
	out := make([]ScheduleDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

func ChecklistItemFromModel(item *models.ChecklistItem) *ChecklistItemDTO {
	if item == nil {
		return nil
	}

	return &ChecklistItemDTO{
		ID:         item.ID,
		ScheduleID: item.ScheduleID,
		Content:    item.Content,
		Done:       item.Done,
		CreatedAt:  item.CreatedAt,
	}
}

func ChecklistFromModels(list []models.ChecklistItem) []ChecklistItemDTO {
	out := make([]ChecklistItemDTO, 0, len(list))
	for i := range list {
		out = append(out, *ChecklistItemFromModel(&list[i]))
	}
	return out
}
