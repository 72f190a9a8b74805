package vlm

import (
	"encoding/json"
	"strings"

	"bda-svc/internal/doctrine"
	"bda-svc/internal/domain/entity"
)

// answer is the structured reply the prompt asks the model for.
type answer struct {
	DamageLevel  string  `json:"damage_level"`
	Confidence   float64 `json:"confidence"`
	Observations string  `json:"observations"`
}

// parseAssessment maps a raw VLM reply onto the doctrine vocabulary.
// A reply that does not parse, or names a level outside the vocabulary,
// degrades to the "unknown" level with minimum confidence. Malformed
// responses are a data-quality condition here, never an error.
func parseAssessment(content string, det entity.Detection, doc doctrine.CategoryDoctrine) entity.Assessment {
	a := entity.Assessment{
		Category:           det.Category,
		Region:             det.Region,
		DetectorConfidence: det.Confidence,
	}

	raw := extractJSON(content)
	var ans answer
	if raw == "" || json.Unmarshal([]byte(raw), &ans) != nil {
		a.DamageLevel = entity.DamageUnknown
		a.Confidence = 0
		a.Observations = strings.TrimSpace(content)
		a.NeedsReview = true
		return a
	}

	level, ok := canonicalLevel(ans.DamageLevel, doc)
	if !ok {
		a.DamageLevel = entity.DamageUnknown
		a.Confidence = 0
		a.Observations = strings.TrimSpace(ans.Observations)
		a.NeedsReview = true
		return a
	}

	a.DamageLevel = level
	a.Confidence = clamp01(ans.Confidence)
	a.Observations = strings.TrimSpace(ans.Observations)
	a.NeedsReview = doc.NeedsReview(a.Confidence)
	return a
}

// canonicalLevel matches a model-supplied level against the vocabulary,
// case-insensitively, and returns the doctrine's spelling.
func canonicalLevel(level string, doc doctrine.CategoryDoctrine) (string, bool) {
	level = strings.ToLower(strings.TrimSpace(level))
	for _, l := range doc.DamageLevels {
		if strings.ToLower(l) == level {
			return l, true
		}
	}
	return "", false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
