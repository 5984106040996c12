package leaderboard

import "context"

// Repository loads and saves the whole league document as one unit.
type Repository interface {
	Load(ctx context.Context) (Dataset, error)
	Save(ctx context.Context, dataset Dataset) error
}
