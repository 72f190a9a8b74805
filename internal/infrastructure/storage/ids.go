package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewArtifactID derives a unique artifact identifier from the source
// image identity plus a timestamp and a random disambiguator, so
// re-running the pipeline against the same image never reuses an ID.
func NewArtifactID(image string, ts time.Time) string {
	stem := strings.TrimSuffix(filepath.Base(image), filepath.Ext(image))
	return fmt.Sprintf("%s_%s_%s",
		stem,
		ts.UTC().Format("2006-01-02_150405Z"),
		uuid.NewString()[:8])
}

// imageStem returns the identifying stem for a source image path.
func imageStem(image string) string {
	return strings.TrimSuffix(filepath.Base(image), filepath.Ext(image))
}
