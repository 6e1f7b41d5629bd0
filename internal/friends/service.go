package friends

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/pkg/db"
	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
	pkgerrors "github.com/clubmate-app/clubmate-backend/pkg/errors"
	"github.com/clubmate-app/clubmate-backend/pkg/pagination"
)

const friendsPairConstraint = "idx_friends_pair"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type friendRepository interface {
	WithTx(tx *gorm.DB) friendRepository
	FindByPair(ctx context.Context, a, b uuid.UUID) (*models.Friend, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Friend, error)
	Create(ctx context.Context, friend *models.Friend) error
	TransitionStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus enums.FriendStatus) (int64, error)
	ListAcceptedForMember(ctx context.Context, memberID uuid.UUID, params pagination.Params) ([]FriendDTO, string, error)
	ListPendingForMember(ctx context.Context, memberID uuid.UUID, params pagination.Params) ([]FriendDTO, string, error)
}

type memberDirectory interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service exposes the friend-relationship operations.
type Service interface {
	RequestFriend(ctx context.Context, requesterID, targetID uuid.UUID) (*RelationshipDTO, error)
	RespondFriend(ctx context.Context, responderID, friendID uuid.UUID, accept bool) (*RelationshipDTO, error)
	ListFriends(ctx context.Context, memberID uuid.UUID, params pagination.Params) ([]FriendDTO, string, error)
	ListPendingRequests(ctx context.Context, memberID uuid.UUID, params pagination.Params) ([]FriendDTO, string, error)
}

type service struct {
	repo    friendRepository
	members memberDirectory
	tx      txRunner
}

// NewService builds a friend service with the provided collaborators.
func NewService(repo friendRepository, members memberDirectory, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("friend repository required")
	}
	if members == nil {
		return nil, fmt.Errorf("member directory required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, members: members, tx: tx}, nil
}

// canonicalPair orders the two ids so the lower uuid always lands in the
// first column. That makes the unique index on (member1_id, member2_id)
// sufficient to rule out mirrored duplicates.
func canonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) < 0 {
		return a, b
	}
	return b, a
}

// RequestFriend creates a pending relationship between requester and target.
// Any existing row for the pair, whatever its status and direction, blocks a
// new request; the message tells the caller which path applies.
func (s *service) RequestFriend(ctx context.Context, requesterID, targetID uuid.UUID) (*RelationshipDTO, error) {
	if requesterID == targetID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot friend yourself")
	}

	for _, id := range []uuid.UUID{requesterID, targetID} {
		exists, err := s.members.ExistsByID(ctx, id)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup member")
		}
		if !exists {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
	}

	// The pair lookup and insert run in one transaction; the unique index on
	// the canonical (member1_id, member2_id) pair backstops concurrent
	// requests racing past the lookup.
	var out *RelationshipDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.FindByPair(ctx, requesterID, targetID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup relationship")
		}
		if existing != nil {
			return existingRelationshipError(existing, requesterID)
		}

		member1, member2 := canonicalPair(requesterID, targetID)
		friend := &models.Friend{
			Member1ID:     member1,
			Member2ID:     member2,
			RequestedByID: requesterID,
			Status:        enums.FriendStatusPending,
		}
		if err := repo.Create(ctx, friend); err != nil {
			if db.IsUniqueViolation(err, friendsPairConstraint) {
				return pkgerrors.New(pkgerrors.CodeConflict, "friend request already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create relationship")
		}
		out = FromModel(friend)
		return nil
	})
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, appErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "relationship transaction")
	}
	return out, nil
}

func existingRelationshipError(friend *models.Friend, requesterID uuid.UUID) error {
	switch friend.Status {
	case enums.FriendStatusPending:
		if friend.RequestedByID == requesterID {
			return pkgerrors.New(pkgerrors.CodeConflict, "already requested, awaiting response")
		}
		return pkgerrors.New(pkgerrors.CodeConflict, "already requested, respond instead")
	case enums.FriendStatusAccepted:
		return pkgerrors.New(pkgerrors.CodeConflict, "already friends")
	default:
		return pkgerrors.New(pkgerrors.CodeConflict, "previously rejected, cannot re-request")
	}
}

// RespondFriend resolves a pending request. Only the side that did not
// initiate may respond; rejection keeps the row so the pair cannot silently
// re-request.
func (s *service) RespondFriend(ctx context.Context, responderID, friendID uuid.UUID, accept bool) (*RelationshipDTO, error) {
	friend, err := s.repo.FindByID(ctx, friendID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "friend request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load relationship")
	}

	if friend.Member1ID != responderID && friend.Member2ID != responderID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a party to this friend request")
	}
	if friend.RequestedByID == responderID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "requester cannot respond to their own request")
	}
	if friend.Status != enums.FriendStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "friend request already resolved")
	}

	target := enums.FriendStatusAccepted
	if !accept {
		target = enums.FriendStatusRejected
	}

	affected, err := s.repo.TransitionStatus(ctx, friend.ID, enums.FriendStatusPending, target)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update relationship status")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "friend request already resolved")
	}

	friend.Status = target
	return FromModel(friend), nil
}

func (s *service) ListFriends(ctx context.Context, memberID uuid.UUID, params pagination.Params) ([]FriendDTO, string, error) {
	list, next, err := s.repo.ListAcceptedForMember(ctx, memberID, params)
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, "", appErr
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list friends")
	}
	return list, next, nil
}

func (s *service) ListPendingRequests(ctx context.Context, memberID uuid.UUID, params pagination.Params) ([]FriendDTO, string, error) {
	list, next, err := s.repo.ListPendingForMember(ctx, memberID, params)
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, "", appErr
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending requests")
	}
	return list, next, nil
}
