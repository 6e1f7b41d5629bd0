package clubs

import (
	"context"
	"errors"

	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// authorizerClubRepo is the slice of club persistence the authorizer needs.
type authorizerClubRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Club, error)
}

// authorizerMemberRepo is the slice of membership persistence the authorizer needs.
type authorizerMemberRepo interface {
	GetByPair(ctx context.Context, clubID, memberID uuid.UUID) (*models.ClubMember, error)
}

// Authorizer answers "may this member act on this club" questions. Every
// predicate is read-only and safe to call repeatedly within one request.
//
// Host authority is always derived from Club.LeaderID. A membership row with
// role host is never consulted for it, so a leader without any membership row
// still passes the host checks.
type Authorizer struct {
	clubs       authorizerClubRepo
	memberships authorizerMemberRepo
}

// NewAuthorizer wires the authorizer to its repositories.
func NewAuthorizer(clubs authorizerClubRepo, memberships authorizerMemberRepo) *Authorizer {
	return &Authorizer{clubs: clubs, memberships: memberships}
}

// IsClubExists reports whether the club record exists at all, active or not.
func (a *Authorizer) IsClubExists(ctx context.Context, clubID uuid.UUID) (bool, error) {
	_, err := a.clubs.FindByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to look up club")
	}
	return true, nil
}

// IsClubHost reports whether the member is the club's leader. The club does
// not have to be active, so a host can still manage a deactivated club.
func (a *Authorizer) IsClubHost(ctx context.Context, clubID, memberID uuid.UUID) (bool, error) {
	club, err := a.findClub(ctx, clubID)
	if err != nil {
		return false, err
	}
	return club.LeaderID == memberID, nil
}

// IsActiveClubHost is IsClubHost restricted to active clubs. A deactivated
// club is reported as not found rather than forbidden so callers cannot
// distinguish it from a club that never existed.
func (a *Authorizer) IsActiveClubHost(ctx context.Context, clubID, memberID uuid.UUID) (bool, error) {
	club, err := a.findActiveClub(ctx, clubID)
	if err != nil {
		return false, err
	}
	return club.LeaderID == memberID, nil
}

// IsActiveClubManager reports whether the member holds the manager role in an
// active club. A member with no membership row at all has no standing, which
// surfaces as forbidden rather than not found since the club itself exists.
func (a *Authorizer) IsActiveClubManager(ctx context.Context, clubID, memberID uuid.UUID) (bool, error) {
	if _, err := a.findActiveClub(ctx, clubID); err != nil {
		return false, err
	}

	membership, err := a.memberships.GetByPair(ctx, clubID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, pkgerrors.New(pkgerrors.CodeForbidden, "member has no standing in this club")
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to look up club membership")
	}
	return membership.Role == enums.ClubRoleManager, nil
}

// IsActiveClubManagerOrHost is the composite gate used for club mutations
// such as schedule and checklist changes. The host branch is checked first so
// a leader without a membership row is still authorized.
func (a *Authorizer) IsActiveClubManagerOrHost(ctx context.Context, clubID, memberID uuid.UUID) (bool, error) {
	club, err := a.findActiveClub(ctx, clubID)
	if err != nil {
		return false, err
	}
	if club.LeaderID == memberID {
		return true, nil
	}

	membership, err := a.memberships.GetByPair(ctx, clubID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, pkgerrors.New(pkgerrors.CodeForbidden, "member has no standing in this club")
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to look up club membership")
	}
	return membership.Role == enums.ClubRoleManager, nil
}

// IsClubMember reports whether a membership row exists for the pair in any
// state, including withdrawn.
func (a *Authorizer) IsClubMember(ctx context.Context, clubID, memberID uuid.UUID) (bool, error) {
	_, err := a.memberships.GetByPair(ctx, clubID, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to look up club membership")
	}
	return true, nil
}

// IsSelf reports plain identity equality.
func (a *Authorizer) IsSelf(targetID, callerID uuid.UUID) bool {
	return targetID == callerID
}

func (a *Authorizer) findClub(ctx context.Context, clubID uuid.UUID) (*models.Club, error) {
	club, err := a.clubs.FindByID(ctx, clubID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "club not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to look up club")
	}
	return club, nil
}

func (a *Authorizer) findActiveClub(ctx context.Context, clubID uuid.UUID) (*models.Club, error) {
	club, err := a.findClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !club.Active {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "club does not exist or is not active")
	}
	return club, nil
}
