// Package download fetches remote videos into the downloads directory and
// dedupes them by a filename-safe identifier derived from the URL.
//
// The identifier heuristic only understands URLs carrying a v= query
// parameter (watch?v=<id>&...); any other shape degenerates to the remaining
// URL text. This is a known limitation kept for stable on-disk naming.
package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrDownload wraps fetch failures and a fetcher that reported success
// without producing the expected output file.
var ErrDownload = errors.New("video download failed")

// Fetcher downloads a single URL to the given destination path.
type Fetcher interface {
	Fetch(ctx context.Context, url, destination string) error
}

// Adapter resolves URLs to local media files, skipping the fetch when the
// derived target already exists.
type Adapter struct {
	Dir     string
	Fetcher Fetcher
	Logger  *zap.Logger
}

func NewAdapter(dir string, fetcher Fetcher, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{Dir: dir, Fetcher: fetcher, Logger: logger}
}

// VideoID extracts the value of the last v= query parameter, truncated at
// the next &. URLs without v= fall through to the whole remainder.
func VideoID(url string) string {
	remainder := url
	if idx := strings.LastIndex(url, "v="); idx >= 0 {
		remainder = url[idx+len("v="):]
	}
	if amp := strings.Index(remainder, "&"); amp >= 0 {
		remainder = remainder[:amp]
	}
	return remainder
}

// Fetch returns the local path for url, downloading it first if needed.
func (a *Adapter) Fetch(ctx context.Context, url string) (string, error) {
	target := filepath.Join(a.Dir, VideoID(url)+".mp4")

	if _, err := os.Stat(target); err == nil {
		a.Logger.Info("media already downloaded", zap.String("path", target))
		return target, nil
	}

	a.Logger.Info("downloading media", zap.String("url", url), zap.String("path", target))
	if err := a.Fetcher.Fetch(ctx, url, target); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}

	if _, err := os.Stat(target); err != nil {
		return "", fmt.Errorf("%w: expected output missing at %s", ErrDownload, target)
	}

	a.Logger.Info("download finished", zap.String("path", target))
	return target, nil
}
