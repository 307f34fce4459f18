package download

import (
	"context"

	"github.com/lrstanley/go-ytdlp"
)

// YTDLPFetcher downloads media through yt-dlp, requesting the best single
// mp4-compatible stream merged into one container.
type YTDLPFetcher struct{}

// Install provisions a yt-dlp binary when none is available on PATH.
func (YTDLPFetcher) Install(ctx context.Context) error {
	_, err := ytdlp.Install(ctx, nil)
	return err
}

func (YTDLPFetcher) Fetch(ctx context.Context, url, destination string) error {
	dl := ytdlp.New().
		Format("best[ext=mp4]").
		Output(destination).
		Quiet().
		NoWarnings().
		NoPlaylist().
		MergeOutputFormat("mp4")

	_, err := dl.Run(ctx, url)
	return err
}
