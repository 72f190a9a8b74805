package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegionCenter(t *testing.T) {
	r := Region{X: 10, Y: 20, Width: 8, Height: 6}
	x, y := r.Center()
	require.Equal(t, 14, x)
	require.Equal(t, 23, y)
}

func TestRegionArea(t *testing.T) {
	require.Equal(t, 48, Region{Width: 8, Height: 6}.Area())
}

func TestNewBDARecord_AllAssessedIsComplete(t *testing.T) {
	rec := NewBDARecord("scene.png", "det", "vlm", []Assessment{
		{Category: "vehicle", DamageLevel: "severe"},
		{Category: "building", DamageLevel: DamageUnknown},
	})
	require.Equal(t, StatusComplete, rec.Status)
	require.Equal(t, "scene.png", rec.Image)
	require.False(t, rec.Timestamp.IsZero())
}

func TestNewBDARecord_UnassessedIsPartialFailure(t *testing.T) {
	rec := NewBDARecord("scene.png", "det", "vlm", []Assessment{
		{Category: "vehicle", DamageLevel: "severe"},
		{Category: "building", DamageLevel: DamageUnassessed},
	})
	require.Equal(t, StatusPartialFailure, rec.Status)
}

func TestNewBDARecord_EmptyIsComplete(t *testing.T) {
	rec := NewBDARecord("scene.png", "det", "vlm", nil)
	require.Equal(t, StatusComplete, rec.Status)
}

func TestNewFailedRecord(t *testing.T) {
	rec := NewFailedRecord("scene.png", "det", "vlm", "unreadable file")
	require.Equal(t, StatusFailed, rec.Status)
	require.Equal(t, "unreadable file", rec.FailureReason)
	require.Empty(t, rec.Assessments)
}

func TestAssessed(t *testing.T) {
	require.True(t, Assessment{DamageLevel: "severe"}.Assessed())
	require.True(t, Assessment{DamageLevel: DamageUnknown}.Assessed())
	require.False(t, Assessment{DamageLevel: DamageUnassessed}.Assessed())
}
