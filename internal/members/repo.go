package members

import (
	"context"
	"time"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes member-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a members repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new member and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateMemberDTO) (*models.Member, error) {
	member := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

// FindByEmail retrieves the member matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByNickname retrieves the member matching the provided nickname.
func (r *Repository) FindByNickname(ctx context.Context, nickname string) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).Where("nickname = ?", nickname).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByID loads a member by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ExistsByID reports whether a member row exists for the id.
func (r *Repository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateLastLogin refreshes the member's last_login_at timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}
