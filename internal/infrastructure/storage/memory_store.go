package storage

import (
	"context"
	"fmt"
	"sync"

	"bda-svc/internal/domain/entity"
	"bda-svc/internal/domain/port"
)

// MemoryStore is an in-memory artifact store. It keeps the same
// never-reuse identifier semantics as the filesystem store and backs
// pipeline tests that must not touch disk.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*entity.BDARecord
	order   []string
}

// NewMemoryStore creates an empty in-memory artifact store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*entity.BDARecord),
	}
}

// Export stores the record under a fresh identifier.
func (s *MemoryStore) Export(ctx context.Context, record *entity.BDARecord) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := NewArtifactID(record.Image, record.Timestamp)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; exists {
		return "", fmt.Errorf("%w: %s", ErrArtifactExists, id)
	}

	record.ID = id
	stored := *record
	s.records[id] = &stored
	s.order = append(s.order, id)
	return id, nil
}

// Retrieve returns one stored record by identifier.
func (s *MemoryStore) Retrieve(ctx context.Context, id string) (*entity.BDARecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.records[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, id)
	}
	copied := *record
	return &copied, nil
}

// RetrieveMany returns stored records matching the filter in export order.
func (s *MemoryStore) RetrieveMany(ctx context.Context, filter port.ArtifactFilter) ([]*entity.BDARecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]bool, len(filter.IDs))
	for _, id := range filter.IDs {
		wanted[id] = true
	}

	var records []*entity.BDARecord
	for _, id := range s.order {
		if len(wanted) > 0 && !wanted[id] {
			continue
		}
		record := s.records[id]
		if filter.Image != "" && !matchesImage(record, filter.Image) {
			continue
		}
		copied := *record
		records = append(records, &copied)
	}
	return records, nil
}

var _ port.ArtifactStore = (*MemoryStore)(nil)
