// Package mcpserver exposes the transcription tools over the MCP stdio
// transport. Handlers never let a collaborator error cross the transport:
// every failure is flattened into a human-readable error result.
package mcpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/fmueller/whisper-mcp/internal/download"
	"github.com/fmueller/whisper-mcp/internal/store"
	"github.com/fmueller/whisper-mcp/internal/whisper"
)

const serverName = "whisper-mcp"

// Options configures a Server. Engine, Store, and Downloads are required;
// everything else has a usable default.
type Options struct {
	Model     string
	Engine    whisper.Engine
	Store     *store.Store
	Downloads *download.Adapter
	Logger    *zap.Logger
	Version   string
	Progress  bool
}

// Server routes tool calls to the staging, transcription, persistence, and
// download collaborators. It holds no per-request state.
type Server struct {
	model     string
	engine    whisper.Engine
	store     *store.Store
	downloads *download.Adapter
	logger    *zap.Logger
	version   string
	progress  bool
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	model := opts.Model
	if model == "" {
		model = whisper.DefaultModel
	}

	version := opts.Version
	if version == "" {
		version = "dev"
	}

	return &Server{
		model:     model,
		engine:    opts.Engine,
		store:     opts.Store,
		downloads: opts.Downloads,
		logger:    logger,
		version:   version,
		progress:  opts.Progress,
	}
}

// Serve runs the MCP server over stdio until the transport closes.
func (s *Server) Serve() error {
	s.logger.Info("starting whisper-mcp server",
		zap.String("model", s.model),
		zap.String("downloads", s.store.Dir),
		zap.String("transport", "stdio"),
	)
	return server.ServeStdio(s.build())
}

func (s *Server) build() *server.MCPServer {
	srv := server.NewMCPServer(serverName, s.version, server.WithToolCapabilities(false))
	srv.AddTool(transcribeFileTool(), s.handleTranscribeFile)
	srv.AddTool(transcribeAudioTool(), s.handleTranscribeAudio)
	srv.AddTool(downloadVideoTool(), s.handleDownloadVideo)
	srv.AddTool(transcribeVideoTool(), s.handleTranscribeVideo)
	return srv
}

// transcribe runs the engine on a staged audio file with the server's model.
func (s *Server) transcribe(ctx context.Context, audioPath, language string, task whisper.Task) (string, error) {
	s.logger.Info("transcribing",
		zap.String("audio", audioPath),
		zap.String("model", s.model),
		zap.String("language", language),
		zap.String("task", string(task)),
	)

	stopSpinner := startSpinner(s.progress, "Transcribing")
	started := time.Now()

	text, err := s.engine.Transcribe(ctx, whisper.Request{
		AudioPath: audioPath,
		Model:     s.model,
		Language:  language,
		Task:      task,
	})
	stopSpinner()
	if err != nil {
		s.logger.Warn("transcription failed", zap.Duration("elapsed", time.Since(started)), zap.Error(err))
		return "", err
	}

	s.logger.Info("transcription finished", zap.Duration("elapsed", time.Since(started)))
	return text, nil
}

// persist saves the transcript next to the media it came from. Persistence
// is best-effort: failures are logged and the transcript is still returned
// to the caller.
func (s *Server) persist(text, sourceLabel string) {
	outPath, err := s.store.Save(text, sourceLabel)
	if err != nil {
		s.logger.Warn("failed to save transcript; returning text anyway", zap.Error(err))
		return
	}
	s.logger.Info("transcript saved", zap.String("path", outPath))
}

// downloadMedia fetches the media behind url into the downloads directory.
func (s *Server) downloadMedia(ctx context.Context, url string) (string, error) {
	stopSpinner := startSpinner(s.progress, "Downloading")
	defer stopSpinner()

	path, err := s.downloads.Fetch(ctx, url)
	if err != nil {
		s.logger.Error("download failed", zap.String("url", url), zap.Error(err))
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	return path, nil
}
