//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"bda-svc/internal/domain/entity"
	"bda-svc/internal/domain/port"
)

// DNNDetector is the stub used when the binary is built without the
// gocv tag. Every detection attempt reports the backend as unavailable.
type DNNDetector struct {
	modelName string
}

// NewDNNDetector creates the stub detector (no OpenCV).
func NewDNNDetector(opts Options) (*DNNDetector, error) {
	opts.applyDefaults()
	return &DNNDetector{modelName: opts.ModelName}, nil
}

// Close is a no-op for the stub.
func (d *DNNDetector) Close() error { return nil }

// ModelName identifies the detection model for export records.
func (d *DNNDetector) ModelName() string { return d.modelName }

// Detect returns an error: detection requires the gocv build tag.
func (d *DNNDetector) Detect(ctx context.Context, imagePath string) ([]entity.Detection, error) {
	_ = ctx
	_ = imagePath
	return nil, errors.New("gocv build tag is not enabled")
}

var _ port.ObjectDetector = (*DNNDetector)(nil)
