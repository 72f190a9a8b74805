// Package storage persists completed assessment records as versioned
// JSON artifacts and retrieves prior exports without re-running
// inference.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"bda-svc/internal/domain/entity"
	"bda-svc/internal/domain/port"
)

// DefaultOutputPath is used when no output folder is configured.
const DefaultOutputPath = "data/output"

// FSStore writes one JSON artifact per record into a flat folder.
// Writes are temp-then-rename so a partial document is never observable
// under a final identifier.
type FSStore struct {
	dir    string
	logger *slog.Logger
}

// NewFSStore creates a filesystem artifact store rooted at dir.
func NewFSStore(dir string, logger *slog.Logger) *FSStore {
	if dir == "" {
		dir = DefaultOutputPath
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FSStore{dir: dir, logger: logger}
}

// Export persists the record under a fresh identifier and returns it.
func (s *FSStore) Export(ctx context.Context, record *entity.BDARecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output folder: %w", err)
	}

	id := NewArtifactID(record.Image, record.Timestamp)
	final := filepath.Join(s.dir, id+".json")
	if _, err := os.Stat(final); err == nil {
		return "", fmt.Errorf("%w: %s", ErrArtifactExists, id)
	}

	record.ID = id
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("publish artifact: %w", err)
	}

	s.logger.Info("Exported artifact", "id", id, "path", final)
	return id, nil
}

// Retrieve loads one prior artifact by identifier.
func (s *FSStore) Retrieve(ctx context.Context, id string) (*entity.BDARecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, id)
		}
		return nil, fmt.Errorf("read artifact %s: %w", id, err)
	}

	var record entity.BDARecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", id, err)
	}
	return &record, nil
}

// RetrieveMany loads all artifacts matching the filter, ordered by
// identifier.
func (s *FSStore) RetrieveMany(ctx context.Context, filter port.ArtifactFilter) ([]*entity.BDARecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list artifacts: %w", err)
	}

	wanted := make(map[string]bool, len(filter.IDs))
	for _, id := range filter.IDs {
		wanted[id] = true
	}

	var records []*entity.BDARecord
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		if len(wanted) > 0 && !wanted[id] {
			continue
		}

		record, err := s.Retrieve(ctx, id)
		if err != nil {
			return nil, err
		}
		if filter.Image != "" && !matchesImage(record, filter.Image) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// matchesImage accepts the recorded path, its base name, or its stem.
func matchesImage(record *entity.BDARecord, image string) bool {
	return record.Image == image ||
		filepath.Base(record.Image) == filepath.Base(image) ||
		imageStem(record.Image) == imageStem(image)
}

var _ port.ArtifactStore = (*FSStore)(nil)
