package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/ortan-league/internal/domain/leaderboard"
	"github.com/riskibarqy/ortan-league/internal/platform/logging"
)

// LeaderboardService reads the league document and records match results
// against it. Results are serialised through one mutex so two concurrent
// submissions cannot interleave their load and save.
type LeaderboardService struct {
	repo   leaderboard.Repository
	logger *logging.Logger
	mu     sync.Mutex
}

func NewLeaderboardService(repo leaderboard.Repository, logger *logging.Logger) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeaderboardService{
		repo:   repo,
		logger: logger,
	}
}

func (s *LeaderboardService) Leaderboards(ctx context.Context) (leaderboard.Dataset, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboards")
	defer span.End()

	dataset, err := s.repo.Load(ctx)
	if err != nil {
		return leaderboard.Dataset{}, fmt.Errorf("load leaderboards: %w", err)
	}

	return dataset, nil
}

func (s *LeaderboardService) RecordResult(ctx context.Context, result leaderboard.MatchResult) (leaderboard.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.RecordResult")
	defer span.End()

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dataset, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load leaderboards: %w", err)
	}

	board, err := leaderboard.ApplyResult(dataset, result)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.repo.Save(ctx, dataset); err != nil {
		return nil, fmt.Errorf("save leaderboards: %w", err)
	}

	s.logger.InfoContext(ctx, "match result recorded",
		"division", result.Division,
		"home_team_id", result.HomeTeamID,
		"away_team_id", result.AwayTeamID,
		"home_goals", *result.HomeGoals,
		"away_goals", *result.AwayGoals,
	)

	return board, nil
}
