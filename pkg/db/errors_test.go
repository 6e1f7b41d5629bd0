package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestIsUniqueViolationNil(t *testing.T) {
	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error should not be a unique violation")
	}
}

func TestIsUniqueViolationPgx(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "idx_friends_pair"}
	if !IsUniqueViolation(err, "") {
		t.Fatal("expected unique violation without constraint filter")
	}
	if !IsUniqueViolation(err, "idx_friends_pair") {
		t.Fatal("expected unique violation with matching constraint")
	}
	if IsUniqueViolation(err, "idx_club_members_pair") {
		t.Fatal("constraint mismatch should not match")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Fatal("foreign key violation should not match")
	}
}

func TestIsUniqueViolationPq(t *testing.T) {
	err := fmt.Errorf("create: %w", &pq.Error{Code: "23505", Constraint: "idx_club_members_pair"})
	if !IsUniqueViolation(err, "idx_club_members_pair") {
		t.Fatal("expected wrapped pq unique violation to match")
	}
}

func TestIsUniqueViolationMessageFallback(t *testing.T) {
	err := errors.New(`pq: duplicate key value violates unique constraint "idx_friends_pair"`)
	if !IsUniqueViolation(err, "") {
		t.Fatal("expected message fallback to match")
	}
	if !IsUniqueViolation(err, "idx_friends_pair") {
		t.Fatal("expected constraint name fallback to match")
	}
}
