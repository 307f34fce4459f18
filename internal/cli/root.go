// Package cli wires the collaborators together and starts the server.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/fmueller/whisper-mcp/internal/download"
	"github.com/fmueller/whisper-mcp/internal/logging"
	"github.com/fmueller/whisper-mcp/internal/mcpserver"
	"github.com/fmueller/whisper-mcp/internal/platform"
	"github.com/fmueller/whisper-mcp/internal/store"
	"github.com/fmueller/whisper-mcp/internal/version"
	"github.com/fmueller/whisper-mcp/internal/whisper"
)

type appState struct {
	verbose      bool
	jsonLogs     bool
	noProgress   bool
	model        string
	downloadsDir string
	whisperBin   string
	installYTDLP bool

	logger *zap.Logger

	serveFn   func(ctx context.Context, srv *mcpserver.Server) error
	installFn func(ctx context.Context) error
}

func NewRootCmd() *cobra.Command {
	app := &appState{
		model:        whisper.DefaultModel,
		installYTDLP: true,
	}

	cmd := &cobra.Command{
		Use:           "whisper-mcp",
		Short:         "Serve speech-to-text transcription tools over the MCP stdio transport",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Resolve(),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := logging.New(logging.Options{Verbose: app.verbose, JSON: app.jsonLogs})
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			app.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runServe(cmd.Context())
		},
	}

	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.Flags().BoolVar(&app.verbose, "verbose", app.verbose, "Enable verbose logs")
	cmd.Flags().BoolVar(&app.jsonLogs, "json", app.jsonLogs, "Enable JSON logging")
	cmd.Flags().BoolVar(&app.noProgress, "no-progress", app.noProgress, "Disable progress indicators")
	cmd.Flags().StringVar(&app.model, "model", app.model, "Model identifier passed to the transcription engine")
	cmd.Flags().StringVar(&app.downloadsDir, "downloads-dir", app.downloadsDir, "Directory for downloaded media and transcripts")
	cmd.Flags().StringVar(&app.whisperBin, "whisper-bin", app.whisperBin, "Transcription engine executable (defaults to mlx_whisper on PATH)")
	cmd.Flags().BoolVar(&app.installYTDLP, "install-ytdlp", app.installYTDLP, "Provision a yt-dlp binary at startup if none is found")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (a *appState) runServe(ctx context.Context) error {
	downloadsDir, err := platform.ResolveDownloadsDir(a.downloadsDir)
	if err != nil {
		return err
	}

	fetcher := download.YTDLPFetcher{}
	if a.installYTDLP {
		installFn := a.installFn
		if installFn == nil {
			installFn = fetcher.Install
		}
		if err := installFn(ctx); err != nil {
			a.log().Warn("yt-dlp provisioning failed; video downloads may not work", zap.Error(err))
		}
	}

	srv := mcpserver.New(mcpserver.Options{
		Model:     a.model,
		Engine:    whisper.NewExecEngine(a.whisperBin, a.log()),
		Store:     store.New(downloadsDir),
		Downloads: download.NewAdapter(downloadsDir, fetcher, a.log()),
		Logger:    a.log(),
		Version:   version.Resolve(),
		Progress:  a.progressEnabled(),
	})

	serveFn := a.serveFn
	if serveFn == nil {
		serveFn = func(_ context.Context, srv *mcpserver.Server) error {
			return srv.Serve()
		}
	}
	return serveFn(ctx, srv)
}

func (a *appState) progressEnabled() bool {
	if a.noProgress {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func (a *appState) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}
