package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/ortan-league/internal/domain/leaderboard"
	"github.com/valyala/bytebufferpool"
)

// LeaderboardRepository keeps the league document in a single JSON file.
// Saves go through a temp file in the same directory and a rename, so a
// crash mid-write leaves the previous document in place.
type LeaderboardRepository struct {
	path string
}

func NewLeaderboardRepository(path string) *LeaderboardRepository {
	return &LeaderboardRepository{path: path}
}

func (r *LeaderboardRepository) Path() string {
	return r.path
}

func (r *LeaderboardRepository) Load(_ context.Context) (leaderboard.Dataset, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return leaderboard.Dataset{}, storageFailure(leaderboard.ErrStorageRead, err, "read %s", r.path)
	}

	dataset, err := leaderboard.UnmarshalDocument(data)
	if err != nil {
		return leaderboard.Dataset{}, storageFailure(leaderboard.ErrStorageRead, err, "parse %s", r.path)
	}

	return dataset, nil
}

func (r *LeaderboardRepository) Save(_ context.Context, dataset leaderboard.Dataset) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := leaderboard.EncodeDocument(buf, dataset); err != nil {
		return storageFailure(leaderboard.ErrStorageWrite, err, "encode %s", r.path)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return storageFailure(leaderboard.ErrStorageWrite, err, "create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return storageFailure(leaderboard.ErrStorageWrite, err, "create temp file in %s", dir)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(buf.B); err != nil {
		return storageFailure(leaderboard.ErrStorageWrite, err, "write %s", tmpName)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return storageFailure(leaderboard.ErrStorageWrite, err, "chmod %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		return storageFailure(leaderboard.ErrStorageWrite, err, "sync %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return storageFailure(leaderboard.ErrStorageWrite, err, "close %s", tmpName)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return storageFailure(leaderboard.ErrStorageWrite, err, "replace %s", r.path)
	}
	committed = true

	return nil
}

// storageFailure keeps sentinel in the wrap chain for errors.Is and attaches
// cause as the secondary error so its stack survives for %+v.
func storageFailure(sentinel, cause error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return crerr.WithSecondaryError(crerr.Wrapf(sentinel, "%s: %v", msg, cause), cause)
}
