package clubs

import (
	"context"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes club persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new club.
func (r *Repository) Create(ctx context.Context, club *models.Club) error {
	return r.db.WithContext(ctx).Create(club).Error
}

// FindByID loads a club by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Club, error) {
	var club models.Club
	if err := r.db.WithContext(ctx).First(&club, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

// SetActive toggles the club's active flag. Membership rows are untouched;
// activity gating happens at authorization time.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Club{}).
		Where("id = ?", id).
		UpdateColumn("active", active)
	return res.RowsAffected, res.Error
}
