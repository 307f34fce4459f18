// Package staging prepares local, engine-readable audio files from the
// supported input sources: an existing file on disk or an inline
// base64-encoded payload.
package staging

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound indicates the referenced audio file does not exist.
	ErrNotFound = errors.New("audio file not found")
	// ErrDecode indicates the inline audio payload is not valid base64.
	ErrDecode = errors.New("invalid base64 audio data")
)

// Audio is a local file ready for the transcription engine. Temporary files
// are owned by the request that staged them and must be released via Cleanup
// on every exit path.
type Audio struct {
	Path      string
	Temporary bool
}

// Cleanup removes the staged file if this request created it. Removing a
// file that is already gone is not an error.
func (a Audio) Cleanup() error {
	if !a.Temporary || a.Path == "" {
		return nil
	}
	if err := os.Remove(a.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// FromFile stages an existing audio file. The file is used in place and is
// never deleted by Cleanup.
func FromFile(path string) (Audio, error) {
	path = filepath.Clean(path)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Audio{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Audio{}, fmt.Errorf("stat audio file %s: %w", path, err)
	}
	return Audio{Path: path}, nil
}

// FromBase64 decodes an inline payload into a temporary file carrying the
// caller-supplied extension. Nothing is written to disk when decoding fails.
func FromBase64(data, format string) (Audio, error) {
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return Audio{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	format = strings.TrimPrefix(strings.TrimSpace(format), ".")
	if format == "" {
		format = "wav"
	}

	f, err := os.CreateTemp("", "whisper-mcp-*."+format)
	if err != nil {
		return Audio{}, fmt.Errorf("create temp audio file: %w", err)
	}

	if _, err := f.Write(decoded); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return Audio{}, fmt.Errorf("write temp audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return Audio{}, fmt.Errorf("close temp audio file: %w", err)
	}

	return Audio{Path: f.Name(), Temporary: true}, nil
}
