package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultDownloadsDirFor(t *testing.T) {
	t.Parallel()

	dir, err := DefaultDownloadsDirFor("/home/alex")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/home/alex", ".whisper-mcp", "downloads"), dir)
}

func TestDefaultDownloadsDirForEmptyHome(t *testing.T) {
	t.Parallel()

	_, err := DefaultDownloadsDirFor("")
	require.Error(t, err)
}

func TestResolveDownloadsDirOverrideCreatesDirectory(t *testing.T) {
	t.Parallel()

	override := filepath.Join(t.TempDir(), "media", "downloads")
	dir, err := ResolveDownloadsDir(override)
	require.NoError(t, err)
	require.Equal(t, override, dir)
	require.DirExists(t, dir)
}

func TestResolveDownloadsDirIsIdempotent(t *testing.T) {
	t.Parallel()

	override := filepath.Join(t.TempDir(), "downloads")
	first, err := ResolveDownloadsDir(override)
	require.NoError(t, err)

	second, err := ResolveDownloadsDir(override)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
