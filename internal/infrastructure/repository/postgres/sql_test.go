package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/riskibarqy/ortan-league/internal/domain/leaderboard"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches wrapped no rows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("select: %w", sql.ErrNoRows)) {
			t.Fatalf("expected true for wrapped sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fakeErr("pq: connection refused")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsUndefinedTable(t *testing.T) {
	t.Run("matches 42P01", func(t *testing.T) {
		err := fmt.Errorf("select: %w", &pq.Error{Code: pqUndefinedTable, Message: `relation "league_documents" does not exist`})
		if !isUndefinedTable(err) {
			t.Fatalf("expected true for undefined table error")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		if isUndefinedTable(&pq.Error{Code: "23505"}) {
			t.Fatalf("expected false for unique violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUndefinedTable(fakeErr(`pq: relation "league_documents" does not exist`)) {
			t.Fatalf("expected false for non pq error")
		}
	})
}

func TestStorageFailure(t *testing.T) {
	cause := fakeErr("pq: connection reset")
	err := storageFailure(leaderboard.ErrStorageWrite, cause, "upsert league document")

	if !errors.Is(err, leaderboard.ErrStorageWrite) {
		t.Fatalf("expected ErrStorageWrite in chain, got %v", err)
	}
	if errors.Is(err, leaderboard.ErrStorageRead) {
		t.Fatalf("write failure must not match ErrStorageRead")
	}
	if got := err.Error(); got != "upsert league document: pq: connection reset: "+leaderboard.ErrStorageWrite.Error() {
		t.Fatalf("unexpected message: %q", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
