package container

import (
	"log/slog"

	app "bda-svc/internal/application"
	"bda-svc/internal/doctrine"
	"bda-svc/internal/domain/port"
)

// Container wires the application services from their ports.
type Container struct {
	Router   *app.PromptRouter
	Pipeline *app.Pipeline
	Store    port.ArtifactStore
	Catalog  *doctrine.Catalog
}

func New(catalog *doctrine.Catalog, detector port.ObjectDetector,
	assessor port.DamageAssessor, store port.ArtifactStore, logger *slog.Logger) *Container {
	router := app.NewPromptRouter(catalog)
	pipeline := app.NewPipeline(detector, assessor, store, router, logger)

	return &Container{
		Router:   router,
		Pipeline: pipeline,
		Store:    store,
		Catalog:  catalog,
	}
}
