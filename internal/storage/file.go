package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"stylora-be/internal/apperr"
	"stylora-be/internal/domain"
	"stylora-be/internal/logger"
)

// FileGateway persists the snapshot as a single JSON document. Writes go
// to a temp file in the same directory and are renamed into place, so a
// concurrent reader never observes a half-written snapshot.
type FileGateway struct {
	path string
}

func NewFileGateway(path string) *FileGateway {
	return &FileGateway{path: path}
}

func (g *FileGateway) Load(ctx context.Context) (*domain.Snapshot, error) {
	log := logger.FromCtx(ctx).With(zap.String("storage", "file"), zap.String("path", g.path))

	data, err := os.ReadFile(g.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewSnapshot(), nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageCorrupt, "storage file is unreadable", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return domain.NewSnapshot(), nil
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// Malformed data degrades to empty defaults rather than
		// taking the whole system down.
		log.Warn("malformed storage file, starting from empty state", zap.Error(err))
		return domain.NewSnapshot(), nil
	}

	snap.Normalize()
	return &snap, nil
}

func (g *FileGateway) Save(ctx context.Context, snap *domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return apperr.Wrap(apperr.KindStorageUnavailable, "persistence cancelled", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(g.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(g.path)+".tmp-*")
	if err != nil {
		return apperr.Wrap(apperr.KindStorageUnavailable, "failed to stage snapshot", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperr.Wrap(apperr.KindStorageUnavailable, "failed to write snapshot", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperr.Wrap(apperr.KindStorageUnavailable, "failed to sync snapshot", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperr.Wrap(apperr.KindStorageUnavailable, "failed to close snapshot", err)
	}

	if err := os.Rename(tmpName, g.path); err != nil {
		os.Remove(tmpName)
		return apperr.Wrap(apperr.KindStorageUnavailable, "failed to commit snapshot", err)
	}

	return nil
}
