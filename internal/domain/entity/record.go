package entity

import "time"

// RecordStatus is the overall outcome for one image.
type RecordStatus string

const (
	StatusComplete       RecordStatus = "complete"        // every detection assessed
	StatusPartialFailure RecordStatus = "partial-failure" // at least one detection could not be assessed
	StatusFailed         RecordStatus = "failed"          // the detection stage failed for the whole image
)

// BDARecord is the unit of export: one image, with its assessments in
// detection order. Immutable once exported.
type BDARecord struct {
	ID            string       `json:"id"`
	Image         string       `json:"image"`
	Timestamp     time.Time    `json:"timestamp"`
	DetectorModel string       `json:"detector_model"`
	VLMModel      string       `json:"vlm_model"`
	Assessments   []Assessment `json:"assessments"`
	Status        RecordStatus `json:"status"`
	FailureReason string       `json:"failure_reason,omitempty"` // set when Status is failed
}

// NewBDARecord creates a record for an image with its assessments and
// derives the overall status from them.
func NewBDARecord(image, detectorModel, vlmModel string, assessments []Assessment) *BDARecord {
	status := StatusComplete
	for _, a := range assessments {
		if !a.Assessed() {
			status = StatusPartialFailure
			break
		}
	}

	return &BDARecord{
		Image:         image,
		Timestamp:     time.Now().UTC(),
		DetectorModel: detectorModel,
		VLMModel:      vlmModel,
		Assessments:   assessments,
		Status:        status,
	}
}

// NewFailedRecord creates a record for an image whose detection stage failed.
func NewFailedRecord(image, detectorModel, vlmModel, reason string) *BDARecord {
	return &BDARecord{
		Image:         image,
		Timestamp:     time.Now().UTC(),
		DetectorModel: detectorModel,
		VLMModel:      vlmModel,
		Assessments:   []Assessment{},
		Status:        StatusFailed,
		FailureReason: reason,
	}
}
