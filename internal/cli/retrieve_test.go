package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bda-svc/config"
	"bda-svc/internal/domain/entity"
	"bda-svc/internal/infrastructure/storage"
)

func exportTestArtifact(t *testing.T, dir string) (*entity.BDARecord, string) {
	t.Helper()
	store := storage.NewFSStore(dir, nil)
	record := entity.NewBDARecord("strike.png", "yolov8n", "test-vlm", []entity.Assessment{
		{Category: "vehicle", DamageLevel: "destroyed", Confidence: 0.95, Observations: "burned out"},
	})
	id, err := store.Export(context.Background(), record)
	require.NoError(t, err)
	return record, id
}

func TestRetrieve_ByIDMatchesExportedFields(t *testing.T) {
	t.Setenv(config.EnvConfig, filepath.Join(t.TempDir(), "absent.yaml"))
	dir := t.TempDir()
	exported, id := exportTestArtifact(t, dir)

	var out bytes.Buffer
	root := NewRootCommand(nil)
	root.SetOut(&out)
	root.SetArgs([]string{"retrieve", "--id", id, "--output", dir})
	require.NoError(t, root.Execute())

	var got []entity.BDARecord
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, id, got[0].ID)
	require.Equal(t, exported.Image, got[0].Image)
	require.Equal(t, exported.Status, got[0].Status)
	require.Equal(t, exported.Assessments, got[0].Assessments)
}

func TestRetrieve_ByImage(t *testing.T) {
	t.Setenv(config.EnvConfig, filepath.Join(t.TempDir(), "absent.yaml"))
	dir := t.TempDir()
	exportTestArtifact(t, dir)
	exportTestArtifact(t, dir)

	var out bytes.Buffer
	root := NewRootCommand(nil)
	root.SetOut(&out)
	root.SetArgs([]string{"retrieve", "--image", "strike.png", "--output", dir})
	require.NoError(t, root.Execute())

	var got []entity.BDARecord
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
}

func TestRetrieve_NoMatches(t *testing.T) {
	t.Setenv(config.EnvConfig, filepath.Join(t.TempDir(), "absent.yaml"))

	root := NewRootCommand(nil)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"retrieve", "--id", "missing", "--output", t.TempDir()})
	require.Error(t, root.Execute())
}
