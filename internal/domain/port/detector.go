package port

import (
	"context"

	"bda-svc/internal/domain/entity"
)

// ObjectDetector wraps the object-detection backend.
type ObjectDetector interface {
	// Detect analyzes one image and returns zero or more detections.
	Detect(ctx context.Context, imagePath string) ([]entity.Detection, error)

	// ModelName identifies the detection model for export records.
	ModelName() string
}
