package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/riskibarqy/ortan-league/internal/config"
	"github.com/riskibarqy/ortan-league/internal/domain/leaderboard"
	"github.com/riskibarqy/ortan-league/internal/infrastructure/repository/file"
	"github.com/riskibarqy/ortan-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/ortan-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/ortan-league/internal/platform/database"
	"github.com/riskibarqy/ortan-league/internal/platform/logging"
)

func noopCleanup() error { return nil }

func newLeaderboardRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (leaderboard.Repository, func() error, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		repo, err := memory.NewLeaderboardRepository(memory.SeedLeaderboards())
		if err != nil {
			return nil, nil, fmt.Errorf("build memory leaderboard repository: %w", err)
		}
		logger.Info("leaderboard storage ready", "driver", cfg.StorageDriver)
		return repo, noopCleanup, nil

	case config.StoragePostgres:
		db, err := database.Open(ctx, database.Options{
			URL:                         cfg.DBURL,
			DisablePreparedBinaryResult: cfg.DBDisablePreparedBinary,
			MaxOpenConns:                10,
			MaxIdleConns:                5,
		})
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewLeaderboardRepository(db)
		if err := seedPostgresFromFile(ctx, repo, cfg.DataPath, logger); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("leaderboard storage ready", "driver", cfg.StorageDriver, "db_name", database.NameFromURL(cfg.DBURL))
		return repo, db.Close, nil

	default:
		repo := file.NewLeaderboardRepository(cfg.DataPath)
		if _, err := os.Stat(repo.Path()); errors.Is(err, fs.ErrNotExist) {
			logger.Warn("leaderboard document not found, reads will fail until it exists", "path", repo.Path())
		}
		logger.Info("leaderboard storage ready", "driver", config.StorageFile, "path", repo.Path())
		return repo, noopCleanup, nil
	}
}

// seedPostgresFromFile copies the local document into an empty database so
// a fresh deployment starts from the same standings as file storage.
func seedPostgresFromFile(ctx context.Context, repo *postgres.LeaderboardRepository, path string, logger *logging.Logger) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	dataset, err := file.NewLeaderboardRepository(path).Load(ctx)
	if err != nil {
		logger.Warn("skip postgres seed, local document unreadable", "path", path, "error", err)
		return nil
	}

	inserted, err := repo.Seed(ctx, dataset)
	if err != nil {
		return fmt.Errorf("seed postgres leaderboards: %w", err)
	}
	if inserted {
		logger.Info("postgres leaderboards seeded from file", "path", path)
	}

	return nil
}
