package leaderboard

import "errors"

var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidGoals    = errors.New("invalid goal count")
	ErrInvalidDivision = errors.New("invalid division")
	ErrTeamNotFound    = errors.New("team not found in division")

	ErrStorageRead  = errors.New("storage read failed")
	ErrStorageWrite = errors.New("storage write failed")
)
