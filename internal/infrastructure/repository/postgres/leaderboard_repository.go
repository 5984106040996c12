package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/ortan-league/internal/domain/leaderboard"
)

const leaderboardDocumentName = "leaderboards"

const (
	selectLeagueDocumentSQL = `
SELECT name, payload, updated_at
FROM league_documents
WHERE name = $1`

	upsertLeagueDocumentSQL = `
INSERT INTO league_documents (name, payload, updated_at)
VALUES ($1, $2::jsonb, NOW())
ON CONFLICT (name) DO UPDATE
SET payload = EXCLUDED.payload, updated_at = NOW()`
)

// LeaderboardRepository stores the whole league document as one jsonb row.
type LeaderboardRepository struct {
	db *sqlx.DB
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) Load(ctx context.Context) (leaderboard.Dataset, error) {
	var row leagueDocumentTableModel
	if err := r.db.GetContext(ctx, &row, selectLeagueDocumentSQL, leaderboardDocumentName); err != nil {
		switch {
		case isNotFound(err):
			return leaderboard.Dataset{}, crerr.Wrapf(leaderboard.ErrStorageRead, "league document %q not found", leaderboardDocumentName)
		case isUndefinedTable(err):
			return leaderboard.Dataset{}, storageFailure(leaderboard.ErrStorageRead, err, "league_documents table missing, run migrations")
		default:
			return leaderboard.Dataset{}, storageFailure(leaderboard.ErrStorageRead, err, "select league document")
		}
	}

	dataset, err := leaderboard.UnmarshalDocument(row.Payload)
	if err != nil {
		return leaderboard.Dataset{}, storageFailure(leaderboard.ErrStorageRead, err, "decode league document")
	}

	return dataset, nil
}

func (r *LeaderboardRepository) Save(ctx context.Context, dataset leaderboard.Dataset) error {
	payload, err := leaderboard.MarshalDocument(dataset)
	if err != nil {
		return storageFailure(leaderboard.ErrStorageWrite, err, "encode league document")
	}

	if _, err := r.db.ExecContext(ctx, upsertLeagueDocumentSQL, leaderboardDocumentName, string(payload)); err != nil {
		return storageFailure(leaderboard.ErrStorageWrite, err, "upsert league document")
	}

	return nil
}

// Seed inserts dataset only when no document exists yet.
func (r *LeaderboardRepository) Seed(ctx context.Context, dataset leaderboard.Dataset) (bool, error) {
	payload, err := leaderboard.MarshalDocument(dataset)
	if err != nil {
		return false, storageFailure(leaderboard.ErrStorageWrite, err, "encode seed document")
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO league_documents (name, payload, updated_at)
VALUES ($1, $2::jsonb, NOW())
ON CONFLICT (name) DO NOTHING`, leaderboardDocumentName, string(payload))
	if err != nil {
		return false, storageFailure(leaderboard.ErrStorageWrite, err, "seed league document")
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, storageFailure(leaderboard.ErrStorageWrite, err, "seed league document rows affected")
	}

	return inserted > 0, nil
}
