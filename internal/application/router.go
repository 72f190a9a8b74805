package app

import "bda-svc/internal/doctrine"

// PromptRouter maps a detected category to its doctrine-defined prompt.
// Pure function of the catalog: unmapped categories route to the
// default template and never fail.
type PromptRouter struct {
	catalog *doctrine.Catalog
}

// NewPromptRouter creates a router over a loaded doctrine catalog.
func NewPromptRouter(catalog *doctrine.Catalog) *PromptRouter {
	return &PromptRouter{catalog: catalog}
}

// Route returns the rendered prompt and doctrine for a category.
func (r *PromptRouter) Route(category string) doctrine.Prompt {
	return r.catalog.Route(category)
}
