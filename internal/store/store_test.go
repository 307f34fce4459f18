package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveDerivesNameFromSourceLabel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := New(dir)

	outPath, err := s.Save("hello", "/somewhere/else/interview.mp3")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "interview.txt"), outPath)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "hello", string(content))
}

func TestSaveOverwritesExistingTranscript(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := New(dir)

	first, err := s.Save("first", "talk.wav")
	require.NoError(t, err)

	second, err := s.Save("second", "talk.wav")
	require.NoError(t, err)
	require.Equal(t, first, second)

	content, err := os.ReadFile(second)
	require.NoError(t, err)
	require.Equal(t, "second", string(content))
}

func TestSaveFailsOnMissingDirectory(t *testing.T) {
	t.Parallel()

	s := New(filepath.Join(t.TempDir(), "does", "not", "exist"))
	_, err := s.Save("text", "talk.wav")
	require.ErrorIs(t, err, ErrWrite)
}
