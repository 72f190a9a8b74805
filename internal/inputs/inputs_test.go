package inputs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))
}

func TestResolvePath_FlagWins(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvInput, "/does/not/matter")

	got, err := ResolvePath(dir)
	require.NoError(t, err)
	require.Equal(t, dir, got)
}

func TestResolvePath_EnvWhenNoFlag(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvInput, dir)

	got, err := ResolvePath("")
	require.NoError(t, err)
	require.Equal(t, dir, got)
}

func TestResolvePath_MissingPathFails(t *testing.T) {
	_, err := ResolvePath("/this/path/definitely/does/not/exist")
	require.Error(t, err)
}

func TestDiscover_FolderSkipsUnsupported(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.png"))
	touch(t, filepath.Join(dir, "a.JPG"))
	touch(t, filepath.Join(dir, "nested", "c.tiff"))
	touch(t, filepath.Join(dir, "readme.txt"))
	touch(t, filepath.Join(dir, "scan.pdf"))

	files, err := Discover(dir, nil)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.JPG"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "nested", "c.tiff"),
	}, files)
}

func TestDiscover_SingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.gif")
	touch(t, path)

	files, err := Discover(path, nil)
	require.NoError(t, err)
	require.Equal(t, []string{path}, files)
}

func TestDiscover_SingleUnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.bmp")
	touch(t, path)

	_, err := Discover(path, nil)
	require.ErrorIs(t, err, ErrNoInput)
}

func TestDiscover_EmptyFolder(t *testing.T) {
	_, err := Discover(t.TempDir(), nil)
	require.ErrorIs(t, err, ErrNoInput)
}

func TestSupported(t *testing.T) {
	for _, path := range []string{"a.jpg", "b.JPEG", "c.png", "d.gif", "e.tif", "f.TIFF"} {
		require.True(t, Supported(path), path)
	}
	for _, path := range []string{"a.bmp", "b.webp", "c.txt", "noext"} {
		require.False(t, Supported(path), path)
	}
}
