package vlm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bda-svc/internal/doctrine"
	"bda-svc/internal/domain/entity"
)

var testDoctrine = doctrine.CategoryDoctrine{
	Category:        "vehicle",
	DamageLevels:    []string{"none", "light", "moderate", "severe", "destroyed"},
	ReviewThreshold: 0.6,
}

var testDetection = entity.Detection{
	Image:      "scene.png",
	Category:   "vehicle",
	Confidence: 0.8,
	Region:     entity.Region{X: 10, Y: 20, Width: 100, Height: 50},
}

func TestExtractJSON_Plain(t *testing.T) {
	got := extractJSON(`{"damage_level": "severe"}`)
	require.JSONEq(t, `{"damage_level": "severe"}`, got)
}

func TestExtractJSON_MarkdownFence(t *testing.T) {
	content := "Here is my assessment:\n```json\n{\"damage_level\": \"severe\"}\n```\nDone."
	require.JSONEq(t, `{"damage_level": "severe"}`, extractJSON(content))
}

func TestExtractJSON_TrailingCommaAndComment(t *testing.T) {
	content := `{
		"damage_level": "light", // visible scorching
		"confidence": 0.7,
	}`
	got := extractJSON(content)
	require.JSONEq(t, `{"damage_level": "light", "confidence": 0.7}`, got)
}

func TestExtractJSON_CommentInsideStringKept(t *testing.T) {
	got := extractJSON(`{"observations": "see http://example.com//photo"}`)
	require.JSONEq(t, `{"observations": "see http://example.com//photo"}`, got)
}

func TestExtractJSON_NoObject(t *testing.T) {
	require.Empty(t, extractJSON("the vehicle looks destroyed to me"))
}

func TestParseAssessment_CleanResponse(t *testing.T) {
	content := `{"damage_level": "Severe", "confidence": 0.85, "observations": "turret displaced"}`
	a := parseAssessment(content, testDetection, testDoctrine)

	require.Equal(t, "severe", a.DamageLevel)
	require.Equal(t, 0.85, a.Confidence)
	require.Equal(t, "turret displaced", a.Observations)
	require.False(t, a.NeedsReview)
	require.Equal(t, "vehicle", a.Category)
	require.Equal(t, testDetection.Region, a.Region)
	require.Equal(t, 0.8, a.DetectorConfidence)
}

func TestParseAssessment_LowConfidenceFlagsReview(t *testing.T) {
	content := `{"damage_level": "light", "confidence": 0.4, "observations": ""}`
	a := parseAssessment(content, testDetection, testDoctrine)
	require.True(t, a.NeedsReview)
	require.Equal(t, "light", a.DamageLevel)
}

func TestParseAssessment_ThresholdBoundaryNotFlagged(t *testing.T) {
	content := `{"damage_level": "light", "confidence": 0.6, "observations": ""}`
	a := parseAssessment(content, testDetection, testDoctrine)
	require.False(t, a.NeedsReview)
}

func TestParseAssessment_UnknownLevelDegrades(t *testing.T) {
	content := `{"damage_level": "annihilated", "confidence": 0.9, "observations": "gone"}`
	a := parseAssessment(content, testDetection, testDoctrine)

	require.Equal(t, entity.DamageUnknown, a.DamageLevel)
	require.Zero(t, a.Confidence)
	require.True(t, a.NeedsReview)
	require.Equal(t, "gone", a.Observations)
}

func TestParseAssessment_FreeTextDegrades(t *testing.T) {
	a := parseAssessment("The vehicle appears heavily damaged.", testDetection, testDoctrine)

	require.Equal(t, entity.DamageUnknown, a.DamageLevel)
	require.Zero(t, a.Confidence)
	require.True(t, a.NeedsReview)
	require.Equal(t, "The vehicle appears heavily damaged.", a.Observations)
}

func TestParseAssessment_ConfidenceClamped(t *testing.T) {
	a := parseAssessment(`{"damage_level": "none", "confidence": 1.7}`, testDetection, testDoctrine)
	require.Equal(t, 1.0, a.Confidence)

	a = parseAssessment(`{"damage_level": "none", "confidence": -0.2}`, testDetection, testDoctrine)
	require.Zero(t, a.Confidence)
	require.True(t, a.NeedsReview)
}
