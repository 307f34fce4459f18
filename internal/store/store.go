// Package store persists transcripts next to downloaded media. Saving is
// best-effort from the caller's point of view: a failed write never blocks
// returning the transcript text.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrWrite wraps any filesystem failure while persisting a transcript.
var ErrWrite = errors.New("transcript write failed")

// Store writes transcripts into a fixed directory.
type Store struct {
	Dir string
}

func New(dir string) *Store {
	return &Store{Dir: dir}
}

// Save writes text to <Dir>/<basename of sourceLabel>.txt, silently
// overwriting an existing transcript, and returns the output path.
func (s *Store) Save(text, sourceLabel string) (string, error) {
	base := filepath.Base(sourceLabel)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".txt"
	outPath := filepath.Join(s.Dir, name)

	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	return outPath, nil
}
