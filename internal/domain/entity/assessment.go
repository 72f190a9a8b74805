package entity

// Sentinel damage levels outside any doctrine vocabulary.
const (
	// DamageUnknown marks an assessment whose VLM answer did not map to
	// a doctrine damage level.
	DamageUnknown = "unknown"

	// DamageUnassessed marks a detection whose inference call failed.
	DamageUnassessed = "unassessed"
)

// Assessment is the VLM's damage judgment for one detection.
type Assessment struct {
	Category           string  `json:"category"`
	DamageLevel        string  `json:"damage_level"` // doctrine vocabulary term or a sentinel
	Confidence         float64 `json:"confidence"`   // VLM confidence in [0, 1]
	Observations       string  `json:"observations"` // free-text VLM remarks
	NeedsReview        bool    `json:"needs_review"` // confidence fell below the category threshold
	Region             Region  `json:"region"`
	DetectorConfidence float64 `json:"detector_confidence"`
}

// Assessed reports whether the inference call itself produced a result,
// regardless of how confident it was.
func (a Assessment) Assessed() bool {
	return a.DamageLevel != DamageUnassessed
}
