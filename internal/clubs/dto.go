package clubs

import (
	"time"

	"github.com/google/uuid"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
)

// ClubDTO is the transport shape for a club.
type ClubDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	LeaderID    uuid.UUID `json:"leader_id"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateClubDTO holds the data required to persist a new club. The caller
// becomes the leader.
type CreateClubDTO struct {
	Name        string
	Description *string
	LeaderID    uuid.UUID
}

// ClubMemberDTO is a membership row joined with the member's public fields.
type ClubMemberDTO struct {
	ID          uuid.UUID             `json:"id"`
	ClubID      uuid.UUID             `json:"club_id"`
	MemberID    uuid.UUID             `json:"member_id"`
	Nickname    string                `json:"nickname"`
	Email       string                `json:"email"`
	Role        enums.ClubRole        `json:"role"`
	State       enums.MembershipState `json:"state"`
	InvitedByID *uuid.UUID            `json:"invited_by_id,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

// MembershipWithClub is a membership row joined with its club's public fields.
type MembershipWithClub struct {
	ID         uuid.UUID             `json:"id"`
	ClubID     uuid.UUID             `json:"club_id"`
	ClubName   string                `json:"club_name"`
	ClubActive bool                  `json:"club_active"`
	Role       enums.ClubRole        `json:"role"`
	State      enums.MembershipState `json:"state"`
	CreatedAt  time.Time             `json:"created_at"`
}

type clubMemberRow struct {
	models.ClubMember
	Nickname string
	Email    string
}

type membershipWithClubRow struct {
	models.ClubMember
	ClubName   string
	ClubActive bool
}

func ClubFromModel(c *models.Club) *ClubDTO {
	if c == nil {
		return nil
	}

	return &ClubDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		LeaderID:    c.LeaderID,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (c CreateClubDTO) ToModel() *models.Club {
	return &models.Club{
		Name:        c.Name,
		Description: c.Description,
		LeaderID:    c.LeaderID,
		Active:      true,
	}
}

// MembershipFromModel shapes a bare membership row without member metadata.
func MembershipFromModel(m *models.ClubMember) *ClubMemberDTO {
	if m == nil {
		return nil
	}

	return &ClubMemberDTO{
		ID:          m.ID,
		ClubID:      m.ClubID,
		MemberID:    m.MemberID,
		Role:        m.Role,
		State:       m.State,
		InvitedByID: m.InvitedByID,
		CreatedAt:   m.CreatedAt,
	}
}

func clubMembersFromRows(rows []clubMemberRow) []ClubMemberDTO {
	out := make([]ClubMemberDTO, 0, len(rows))
	for _, row := range rows {
		dto := MembershipFromModel(&row.ClubMember)
		dto.Nickname = row.Nickname
		dto.Email = row.Email
		out = append(out, *dto)
	}
	return out
}

func membershipRowsToDTO(rows []membershipWithClubRow) []MembershipWithClub {
	out := make([]MembershipWithClub, 0, len(rows))
	for _, row := range rows {
		out = append(out, MembershipWithClub{
			ID:         row.ID,
			ClubID:     row.ClubID,
			ClubName:   row.ClubName,
			ClubActive: row.ClubActive,
			Role:       row.Role,
			State:      row.State,
			CreatedAt:  row.CreatedAt,
		})
	}
	return out
}
