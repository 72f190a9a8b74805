// Package app orchestrates the assessment pipeline: detect, route,
// infer, evaluate confidence, aggregate, export. Failures are isolated
// per image and per detection so a batch always yields partial results.
package app

import (
	"context"
	"log/slog"

	"bda-svc/internal/domain/entity"
	"bda-svc/internal/domain/port"
)

// Pipeline composes the detector, prompt router, VLM assessor, and
// artifact store for sequential per-image processing.
type Pipeline struct {
	detector port.ObjectDetector
	assessor port.DamageAssessor
	store    port.ArtifactStore
	router   *PromptRouter
	logger   *slog.Logger
}

// NewPipeline wires the pipeline from its collaborators.
func NewPipeline(detector port.ObjectDetector, assessor port.DamageAssessor,
	store port.ArtifactStore, router *PromptRouter, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		detector: detector,
		assessor: assessor,
		store:    store,
		router:   router,
		logger:   logger,
	}
}

// ImageOutcome is the per-image result handed back to the caller.
type ImageOutcome struct {
	Image      string
	Status     entity.RecordStatus
	ArtifactID string

	// ExportErr is set when the record could not be persisted. The
	// record itself is retained for manual recovery; inference is not
	// re-run.
	ExportErr error
	Record    *entity.BDARecord
}

// Summary aggregates a batch run.
type Summary struct {
	Outcomes       []ImageOutcome
	Complete       int
	Partial        int
	Failed         int
	ExportFailures int
}

// Run processes the discovered images one at a time. A failure in one
// image never halts the rest of the batch; cancellation is honored
// between images so no partially written artifact is left behind.
func (p *Pipeline) Run(ctx context.Context, paths []string) (*Summary, error) {
	summary := &Summary{Outcomes: make([]ImageOutcome, 0, len(paths))}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("Batch cancelled", "processed", len(summary.Outcomes), "remaining", len(paths)-len(summary.Outcomes))
			return summary, err
		}

		p.logger.Info("Processing image", "image", path)
		record := p.AnalyzeImage(ctx, path)
		outcome := ImageOutcome{Image: path, Status: record.Status}

		// Failed images produced nothing to assess; only assessed
		// records become artifacts.
		if record.Status != entity.StatusFailed {
			id, err := p.store.Export(ctx, record)
			if err != nil {
				p.logger.Error("Failed to export record", "image", path, "error", err)
				outcome.ExportErr = err
				outcome.Record = record
				summary.ExportFailures++
			} else {
				outcome.ArtifactID = id
			}
		}

		switch record.Status {
		case entity.StatusComplete:
			summary.Complete++
		case entity.StatusPartialFailure:
			summary.Partial++
		case entity.StatusFailed:
			summary.Failed++
		}

		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	return summary, nil
}

// AnalyzeImage runs the per-image state machine: detect, then route and
// infer per detection, then aggregate. A detection-stage failure yields
// a failed record; a per-detection inference failure degrades that one
// assessment and continues the image.
func (p *Pipeline) AnalyzeImage(ctx context.Context, imagePath string) *entity.BDARecord {
	detections, err := p.detector.Detect(ctx, imagePath)
	if err != nil {
		p.logger.Error("Detection failed", "image", imagePath, "error", err)
		return entity.NewFailedRecord(imagePath, p.detector.ModelName(), p.assessor.ModelName(), err.Error())
	}

	assessments := make([]entity.Assessment, 0, len(detections))
	for _, det := range detections {
		prompt := p.router.Route(det.Category)

		assessment, err := p.assessor.Assess(ctx, det, prompt)
		if err != nil {
			p.logger.Warn("Inference failed, recording detection as unassessed",
				"image", imagePath,
				"category", det.Category,
				"error", err)
			assessment = unassessed(det, err)
		}

		assessments = append(assessments, assessment)
	}

	return entity.NewBDARecord(imagePath, p.detector.ModelName(), p.assessor.ModelName(), assessments)
}

// unassessed builds the degraded assessment recorded when the inference
// call itself failed.
func unassessed(det entity.Detection, err error) entity.Assessment {
	return entity.Assessment{
		Category:           det.Category,
		DamageLevel:        entity.DamageUnassessed,
		Confidence:         0,
		Observations:       err.Error(),
		NeedsReview:        true,
		Region:             det.Region,
		DetectorConfidence: det.Confidence,
	}
}
