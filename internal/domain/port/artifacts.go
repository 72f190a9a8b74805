package port

import (
	"context"

	"bda-svc/internal/domain/entity"
)

// ArtifactFilter selects prior export artifacts for retrieval.
// A zero filter selects everything.
type ArtifactFilter struct {
	IDs   []string // exact artifact identifiers
	Image string   // all artifacts for one source image
}

// ArtifactStore persists completed records and retrieves prior exports.
type ArtifactStore interface {
	// Export persists the record under a new, never-reused identifier
	// and returns that identifier. It never overwrites a prior artifact.
	Export(ctx context.Context, record *entity.BDARecord) (string, error)

	// Retrieve returns the record exported under the given identifier.
	Retrieve(ctx context.Context, id string) (*entity.BDARecord, error)

	// RetrieveMany returns all records matching the filter, ordered by
	// identifier.
	RetrieveMany(ctx context.Context, filter ArtifactFilter) ([]*entity.BDARecord, error)
}
