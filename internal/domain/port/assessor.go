package port

import (
	"context"

	"bda-svc/internal/doctrine"
	"bda-svc/internal/domain/entity"
)

// DamageAssessor wraps the VLM backend.
type DamageAssessor interface {
	// Assess runs VLM inference for one detection against a routed
	// prompt and returns a structured assessment. The damage level is
	// always drawn from the prompt's doctrine vocabulary or a sentinel;
	// an error is returned only when the backend is unreachable.
	Assess(ctx context.Context, det entity.Detection, prompt doctrine.Prompt) (entity.Assessment, error)

	// ModelName identifies the VLM for export records.
	ModelName() string
}
