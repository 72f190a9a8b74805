package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"bda-svc/internal/domain/port"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	record := testRecord("scene.png")
	id, err := store.Export(ctx, record)
	require.NoError(t, err)

	got, err := store.Retrieve(ctx, id)
	require.NoError(t, err)
	require.Equal(t, record.Assessments, got.Assessments)
}

func TestMemoryStore_RetrieveUnknownID(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Retrieve(context.Background(), "missing")
	require.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestMemoryStore_FilterByImage(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Export(ctx, testRecord("alpha.png"))
	require.NoError(t, err)
	_, err = store.Export(ctx, testRecord("bravo.png"))
	require.NoError(t, err)

	records, err := store.RetrieveMany(ctx, port.ArtifactFilter{Image: "bravo.png"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "bravo.png", records[0].Image)
}

func TestMemoryStore_PreservesExportOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, image := range []string{"c.png", "a.png", "b.png"} {
		_, err := store.Export(ctx, testRecord(image))
		require.NoError(t, err)
	}

	records, err := store.RetrieveMany(ctx, port.ArtifactFilter{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "c.png", records[0].Image)
	require.Equal(t, "a.png", records[1].Image)
	require.Equal(t, "b.png", records[2].Image)
}
