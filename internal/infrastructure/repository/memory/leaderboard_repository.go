package memory

import (
	"context"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/ortan-league/internal/domain/leaderboard"
)

// LeaderboardRepository holds the encoded league document in memory. Keeping
// bytes instead of the decoded value means callers never share standings
// slices or extra maps with the store.
type LeaderboardRepository struct {
	mu       sync.RWMutex
	document []byte
}

func NewLeaderboardRepository(seed leaderboard.Dataset) (*LeaderboardRepository, error) {
	document, err := leaderboard.MarshalDocument(seed)
	if err != nil {
		return nil, crerr.Wrap(err, "encode seed leaderboards")
	}

	return &LeaderboardRepository{document: document}, nil
}

func (r *LeaderboardRepository) Load(_ context.Context) (leaderboard.Dataset, error) {
	r.mu.RLock()
	document := r.document
	r.mu.RUnlock()

	dataset, err := leaderboard.UnmarshalDocument(document)
	if err != nil {
		return leaderboard.Dataset{}, crerr.WithSecondaryError(crerr.Wrapf(leaderboard.ErrStorageRead, "decode in-memory document: %v", err), err)
	}

	return dataset, nil
}

func (r *LeaderboardRepository) Save(_ context.Context, dataset leaderboard.Dataset) error {
	document, err := leaderboard.MarshalDocument(dataset)
	if err != nil {
		return crerr.WithSecondaryError(crerr.Wrapf(leaderboard.ErrStorageWrite, "encode in-memory document: %v", err), err)
	}

	r.mu.Lock()
	r.document = document
	r.mu.Unlock()

	return nil
}
