//go:build db
// +build db

package friends

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/clubmate-app/clubmate-backend/pkg/db"
	"github.com/clubmate-app/clubmate-backend/pkg/db/models"
	"github.com/clubmate-app/clubmate-backend/pkg/enums"
	"github.com/clubmate-app/clubmate-backend/pkg/pagination"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("CLUBMATE_DB_DSN")
	if dsn == "" {
		t.Skip("CLUBMATE_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

func seedMember(t *testing.T, tx *gorm.DB) *models.Member {
	t.Helper()

	member := &models.Member{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("cm_test_%s@example.com", uuid.NewString()),
		Nickname:     fmt.Sprintf("cm_test_%s", uuid.NewString()[:8]),
		PasswordHash: "hash",
		IsActive:     true,
	}
	if err := tx.Create(member).Error; err != nil {
		t.Fatalf("create member: %v", err)
	}
	return member
}

func TestRepositoryFriendFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	if tx.Error != nil {
		t.Fatalf("begin tx: %v", tx.Error)
	}
	t.Cleanup(func() {
		_ = tx.Rollback()
	})

	repo := NewRepository(tx)
	ctx := context.Background()

	memberA := seedMember(t, tx)
	memberB := seedMember(t, tx)

	member1, member2 := memberA.ID, memberB.ID
	if bytes.Compare(member1[:], member2[:]) > 0 {
		member1, member2 = member2, member1
	}

	friend := &models.Friend{
		Member1ID:     member1,
		Member2ID:     member2,
		RequestedByID: memberA.ID,
		Status:        enums.FriendStatusPending,
	}
	if err := repo.Create(ctx, friend); err != nil {
		t.Fatalf("create friend: %v", err)
	}

	// Lookup is symmetric regardless of argument order.
	found, err := repo.FindByPair(ctx, memberB.ID, memberA.ID)
	if err != nil {
		t.Fatalf("find by pair: %v", err)
	}
	if found.ID != friend.ID {
		t.Fatalf("expected row %s got %s", friend.ID, found.ID)
	}

	dup := &models.Friend{
		Member1ID:     member1,
		Member2ID:     member2,
		RequestedByID: memberB.ID,
		Status:        enums.FriendStatusPending,
	}
	err = repo.Create(ctx, dup)
	if err == nil {
		t.Fatal("expected duplicate pair to violate unique index")
	}
	if !db.IsUniqueViolation(err, "idx_friends_pair") {
		t.Fatalf("expected unique violation on pair index, got %v", err)
	}

	count, err := repo.CountForPair(ctx, memberA.ID, memberB.ID)
	if err != nil {
		t.Fatalf("count pair: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}

	pending, _, err := repo.ListPendingForMember(ctx, memberB.ID, pagination.Params{})
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].OtherNickname != memberA.Nickname {
		t.Fatalf("unexpected pending list %+v", pending)
	}

	affected, err := repo.TransitionStatus(ctx, friend.ID, enums.FriendStatusPending, enums.FriendStatusAccepted)
	if err != nil {
		t.Fatalf("transition status: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected one row affected, got %d", affected)
	}

	accepted, _, err := repo.ListAcceptedForMember(ctx, memberA.ID, pagination.Params{})
	if err != nil {
		t.Fatalf("list accepted: %v", err)
	}
	if len(accepted) != 1 || accepted[0].OtherID != memberB.ID {
		t.Fatalf("unexpected accepted list %+v", accepted)
	}
}
