package members

import (
	"time"

	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
)

// MemberDTO is the transport shape that omits sensitive credentials.
type MemberDTO struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Nickname    string     `json:"nickname"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateMemberDTO holds the data required by the repo to persist a new member.
type CreateMemberDTO struct {
	Email        string
	Nickname     string
	PasswordHash string
	IsActive     *bool
}

func FromModel(m *models.Member) *MemberDTO {
	if m == nil {
		return nil
	}

	return &MemberDTO{
		ID:          m.ID,
		Email:       m.Email,
		Nickname:    m.Nickname,
		IsActive:    m.IsActive,
		LastLoginAt: m.LastLoginAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (c CreateMemberDTO) ToModel() *models.Member {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	return &models.Member{
		Email:        c.Email,
		Nickname:     c.Nickname,
		PasswordHash: c.PasswordHash,
		IsActive:     isActive,
	}
}
