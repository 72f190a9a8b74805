package storage

import "errors"

var (
	// ErrArtifactExists guards the no-overwrite invariant: an export
	// identifier is never reused within the output store.
	ErrArtifactExists = errors.New("artifact already exists")

	// ErrArtifactNotFound is returned by retrieval for unknown identifiers.
	ErrArtifactNotFound = errors.New("artifact not found")
)
