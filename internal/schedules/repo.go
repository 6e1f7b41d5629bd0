package schedules

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
)

// Repository exposes schedule and checklist persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, schedule *models.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := r.db.WithContext(ctx).First(&schedule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *Repository) Update(ctx context.Context, schedule *models.Schedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

// Delete removes the schedule and its checklist in one round trip each; the
// checklist has no standalone lifecycle.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.ChecklistItem{}, "schedule_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.Schedule{}, "id = ?", id).Error
}

func (r *Repository) ListByClub(ctx context.Context, clubID uuid.UUID) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("starts_at").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *Repository) CreateChecklistItem(ctx context.Context, item *models.ChecklistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *Repository) FindChecklistItem(ctx context.Context, id uuid.UUID) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) SetChecklistItemDone(ctx context.Context, id uuid.UUID, done bool) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ChecklistItem{}).
		Where("id = ?", id).
		UpdateColumn("done", done)
	return res.RowsAffected, res.Error
}

func (r *Repository) ListChecklist(ctx context.Context, scheduleID uuid.UUID) ([]models.ChecklistItem, error) {
	var items []models.ChecklistItem
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Order("created_at").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
