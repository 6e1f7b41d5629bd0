package clubs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/pkg/db"
	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
	"github.com/clubmate-app/clubmate-backend/pkg/pagination"
)

const membersPairConstraint = "idx_club_members_pair"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type clubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Club, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (int64, error)
}

type clubMemberRepository interface {
	WithTx(tx *gorm.DB) clubMemberRepository
	GetByPair(ctx context.Context, clubID, memberID uuid.UUID) (*models.ClubMember, error)
	Create(ctx context.Context, membership *models.ClubMember) error
	Reset(ctx context.Context, id uuid.UUID, role enums.ClubRole, state enums.MembershipState, invitedBy *uuid.UUID) error
	TransitionState(ctx context.Context, id uuid.UUID, fromState, toState enums.MembershipState) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByClub(ctx context.Context, clubID uuid.UUID, params pagination.Params) ([]ClubMemberDTO, string, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]MembershipWithClub, error)
}

type memberDirectory interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type clubAuthorizer interface {
	IsClubHost(ctx context.Context, clubID, memberID uuid.UUID) (bool, error)
	IsActiveClubManagerOrHost(ctx context.Context, clubID, memberID uuid.UUID) (bool, error)
	IsClubMember(ctx context.Context, clubID, memberID uuid.UUID) (bool, error)
}

// Service exposes club and membership lifecycle operations. Every mutating
// call authorizes the actor before touching storage.
type Service interface {
	CreateClub(ctx context.Context, leaderID uuid.UUID, input CreateClubInput) (*ClubDTO, error)
	GetClub(ctx context.Context, id uuid.UUID) (*ClubDTO, error)
	SetClubActive(ctx context.Context, actorID, clubID uuid.UUID, active bool) (*ClubDTO, error)
	AddMember(ctx context.Context, actorID, clubID, memberID uuid.UUID, role enums.ClubRole) (*ClubMemberDTO, error)
	Apply(ctx context.Context, callerID, clubID uuid.UUID) (*ClubMemberDTO, error)
	RespondToInvitation(ctx context.Context, callerID, clubID uuid.UUID, accept bool) (*ClubMemberDTO, error)
	ApproveApplication(ctx context.Context, actorID, clubID, memberID uuid.UUID) (*ClubMemberDTO, error)
	Withdraw(ctx context.Context, callerID, clubID uuid.UUID) error
	ListMembers(ctx context.Context, callerID, clubID uuid.UUID, params pagination.Params) ([]ClubMemberDTO, string, error)
	ListMyClubs(ctx context.Context, callerID uuid.UUID) ([]MembershipWithClub, error)
}

type service struct {
	clubs       clubRepository
	memberships clubMemberRepository
	members     memberDirectory
	authz       clubAuthorizer
	tx          txRunner
}

// NewService builds a club service with the provided collaborators.
func NewService(clubs clubRepository, memberships clubMemberRepository, members memberDirectory, authz clubAuthorizer, tx txRunner) (Service, error) {
	if clubs == nil {
		return nil, fmt.Errorf("club repository required")
	}
	if memberships == nil {
		return nil, fmt.Errorf("club member repository required")
	}
	if members == nil {
		return nil, fmt.Errorf("member directory required")
	}
	if authz == nil {
		return nil, fmt.Errorf("authorizer required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		clubs:       clubs,
		memberships: memberships,
		members:     members,
		authz:       authz,
		tx:          tx,
	}, nil
}

// CreateClubInput captures the fields needed to found a club.
type CreateClubInput struct {
	Name        string
	Description *string
}

func (s *service) CreateClub(ctx context.Context, leaderID uuid.UUID, input CreateClubInput) (*ClubDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "club name is required")
	}

	club := CreateClubDTO{
		Name:        name,
		Description: input.Description,
		LeaderID:    leaderID,
	}.ToModel()
	if err := s.clubs.Create(ctx, club); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create club")
	}
	return ClubFromModel(club), nil
}

func (s *service) GetClub(ctx context.Context, id uuid.UUID) (*ClubDTO, error) {
	club, err := s.findClub(ctx, id)
	if err != nil {
		return nil, err
	}
	return ClubFromModel(club), nil
}

// SetClubActive toggles the club's active flag. Only the host may do this,
// and the check deliberately ignores the current flag so a deactivated club
// can be reactivated by its leader. Membership rows are left untouched.
func (s *service) SetClubActive(ctx context.Context, actorID, clubID uuid.UUID, active bool) (*ClubDTO, error) {
	ok, err := s.authz.IsClubHost(ctx, clubID, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the club host may change club state")
	}

	if _, err := s.clubs.SetActive(ctx, clubID, active); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update club state")
	}
	return s.GetClub(ctx, clubID)
}

// AddMember invites a member into the club on the actor's authority. The
// membership starts in the invited state. Duplicate adds against any live
// relationship are rejected; a withdrawn row is reset in place so the pair
// never grows a second row.
func (s *service) AddMember(ctx context.Context, actorID, clubID, memberID uuid.UUID, role enums.ClubRole) (*ClubMemberDTO, error) {
	if !role.IsValid() || role == enums.ClubRoleHost {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid member role")
	}

	ok, err := s.authz.IsActiveClubManagerOrHost(ctx, clubID, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "manager or host role required")
	}

	exists, err := s.members.ExistsByID(ctx, memberID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup member")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
	}

	return s.upsertMembership(ctx, clubID, memberID, role, enums.MembershipStateInvited, &actorID)
}

// Apply is the self-initiated counterpart of AddMember: the caller asks to
// join an active club as a participant and waits for approval.
func (s *service) Apply(ctx context.Context, callerID, clubID uuid.UUID) (*ClubMemberDTO, error) {
	club, err := s.findClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !club.Active {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "club does not exist or is not active")
	}
	if club.LeaderID == callerID {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "host cannot apply to their own club")
	}

	return s.upsertMembership(ctx, clubID, callerID, enums.ClubRoleParticipant, enums.MembershipStateApplying, nil)
}

// upsertMembership enforces the one-row-per-pair rule. The lookup and write
// run in one transaction; the unique index on (club_id, member_id) is the
// backstop for two concurrent callers racing past the lookup.
func (s *service) upsertMembership(ctx context.Context, clubID, memberID uuid.UUID, role enums.ClubRole, state enums.MembershipState, invitedBy *uuid.UUID) (*ClubMemberDTO, error) {
	var out *ClubMemberDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		memberships := s.memberships.WithTx(tx)

		existing, err := memberships.GetByPair(ctx, clubID, memberID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup membership")
		}

		if existing != nil {
			if existing.State.IsActiveRelationship() {
				return pkgerrors.New(pkgerrors.CodeConflict, "member already belongs to this club")
			}
			if err := memberships.Reset(ctx, existing.ID, role, state, invitedBy); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset membership")
			}
			existing.Role = role
			existing.State = state
			existing.InvitedByID = invitedBy
			out = MembershipFromModel(existing)
			return nil
		}

		membership := &models.ClubMember{
			ClubID:      clubID,
			MemberID:    memberID,
			Role:        role,
			State:       state,
			InvitedByID: invitedBy,
		}
		if err := memberships.Create(ctx, membership); err != nil {
			if db.IsUniqueViolation(err, membersPairConstraint) {
				return pkgerrors.New(pkgerrors.CodeConflict, "member already belongs to this club")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create membership")
		}
		out = MembershipFromModel(membership)
		return nil
	})
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, appErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "membership transaction")
	}
	return out, nil
}

// RespondToInvitation resolves the caller's own pending invitation. Accepting
// moves the row to joining; rejecting deletes it, as if the invitation never
// happened. Any state other than invited is reported as a state conflict.
func (s *service) RespondToInvitation(ctx context.Context, callerID, clubID uuid.UUID, accept bool) (*ClubMemberDTO, error) {
	membership, err := s.findMembership(ctx, clubID, callerID)
	if err != nil {
		return nil, err
	}
	if membership.State != enums.MembershipStateInvited {
		if membership.State == enums.MembershipStateJoining {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "already joined")
		}
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "membership is not in invited state")
	}

	if !accept {
		if err := s.memberships.Delete(ctx, membership.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete membership")
		}
		return nil, nil
	}

	return s.transition(ctx, membership, enums.MembershipStateInvited, enums.MembershipStateJoining)
}

// ApproveApplication promotes an applying membership to joining on the
// actor's authority.
func (s *service) ApproveApplication(ctx context.Context, actorID, clubID, memberID uuid.UUID) (*ClubMemberDTO, error) {
	ok, err := s.authz.IsActiveClubManagerOrHost(ctx, clubID, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "manager or host role required")
	}

	membership, err := s.findMembership(ctx, clubID, memberID)
	if err != nil {
		return nil, err
	}
	if membership.State != enums.MembershipStateApplying {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "membership is not in applying state")
	}

	return s.transition(ctx, membership, enums.MembershipStateApplying, enums.MembershipStateJoining)
}

// Withdraw moves the caller's joining membership to withdrawn. The row is
// kept so later re-invitations can see the history.
func (s *service) Withdraw(ctx context.Context, callerID, clubID uuid.UUID) error {
	membership, err := s.findMembership(ctx, clubID, callerID)
	if err != nil {
		return err
	}
	switch membership.State {
	case enums.MembershipStateJoining:
	case enums.MembershipStateWithdrawn:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "already withdrawn")
	default:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "membership is not active")
	}

	_, err = s.transition(ctx, membership, enums.MembershipStateJoining, enums.MembershipStateWithdrawn)
	return err
}

func (s *service) ListMembers(ctx context.Context, callerID, clubID uuid.UUID, params pagination.Params) ([]ClubMemberDTO, string, error) {
	host, err := s.authz.IsClubHost(ctx, clubID, callerID)
	if err != nil {
		return nil, "", err
	}
	if !host {
		member, err := s.authz.IsClubMember(ctx, clubID, callerID)
		if err != nil {
			return nil, "", err
		}
		if !member {
			return nil, "", pkgerrors.New(pkgerrors.CodeForbidden, "club membership required")
		}
	}

	list, next, err := s.memberships.ListByClub(ctx, clubID, params)
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, "", appErr
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list club members")
	}
	return list, next, nil
}

func (s *service) ListMyClubs(ctx context.Context, callerID uuid.UUID) ([]MembershipWithClub, error) {
	list, err := s.memberships.ListByMember(ctx, callerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list member clubs")
	}
	return list, nil
}

// transition performs a conditional state change. Zero rows affected means a
// concurrent caller already moved the row, which surfaces as a state
// conflict rather than a silent success.
func (s *service) transition(ctx context.Context, membership *models.ClubMember, from, to enums.MembershipState) (*ClubMemberDTO, error) {
	affected, err := s.memberships.TransitionState(ctx, membership.ID, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update membership state")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "membership state changed concurrently")
	}
	membership.State = to
	return MembershipFromModel(membership), nil
}

func (s *service) findClub(ctx context.Context, id uuid.UUID) (*models.Club, error) {
	club, err := s.clubs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "club not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load club")
	}
	return club, nil
}

func (s *service) findMembership(ctx context.Context, clubID, memberID uuid.UUID) (*models.ClubMember, error) {
	membership, err := s.memberships.GetByPair(ctx, clubID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load membership")
	}
	return membership, nil
}
