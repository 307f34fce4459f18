package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/fmueller/whisper-mcp/internal/staging"
	"github.com/fmueller/whisper-mcp/internal/whisper"
)

func transcribeFileTool() mcp.Tool {
	return mcp.NewTool("transcribe_file",
		mcp.WithDescription("Transcribe an audio file from disk."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path to the audio file"),
		),
		mcp.WithString("language",
			mcp.DefaultString("en"),
			mcp.Description("Language code to force (e.g. \"en\", \"fr\"); empty for auto-detect"),
		),
		mcp.WithString("task",
			mcp.DefaultString(string(whisper.TaskTranscribe)),
			mcp.Enum(string(whisper.TaskTranscribe), string(whisper.TaskTranslate)),
			mcp.Description("Transcribe in-language or translate to English"),
		),
	)
}

func transcribeAudioTool() mcp.Tool {
	return mcp.NewTool("transcribe_audio",
		mcp.WithDescription("Transcribe base64-encoded audio data."),
		mcp.WithString("audio_data",
			mcp.Required(),
			mcp.Description("Base64-encoded audio bytes"),
		),
		mcp.WithString("language",
			mcp.DefaultString("en"),
			mcp.Description("Language code to force; empty for auto-detect"),
		),
		mcp.WithString("file_format",
			mcp.DefaultString("wav"),
			mcp.Description("Audio file format (wav, mp3, ...)"),
		),
		mcp.WithString("task",
			mcp.DefaultString(string(whisper.TaskTranscribe)),
			mcp.Enum(string(whisper.TaskTranscribe), string(whisper.TaskTranslate)),
			mcp.Description("Transcribe in-language or translate to English"),
		),
	)
}

func downloadVideoTool() mcp.Tool {
	return mcp.NewTool("download_video",
		mcp.WithDescription("Download a video into the downloads directory, reusing an existing copy when present."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Video URL"),
		),
		mcp.WithBoolean("keep_file",
			mcp.DefaultBool(true),
			mcp.Description("Keep the downloaded file after dependent operations"),
		),
	)
}

func transcribeVideoTool() mcp.Tool {
	return mcp.NewTool("transcribe_video",
		mcp.WithDescription("Download a video and transcribe its audio track."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Video URL"),
		),
		mcp.WithString("language",
			mcp.DefaultString("en"),
			mcp.Description("Language code to force; empty for auto-detect"),
		),
		mcp.WithString("task",
			mcp.DefaultString(string(whisper.TaskTranscribe)),
			mcp.Enum(string(whisper.TaskTranscribe), string(whisper.TaskTranslate)),
			mcp.Description("Transcribe in-language or translate to English"),
		),
		mcp.WithBoolean("keep_file",
			mcp.DefaultBool(true),
			mcp.Description("Keep the downloaded media after transcription"),
		),
	)
}

func (s *Server) handleTranscribeFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	language, task, errResult := languageAndTask(req)
	if errResult != nil {
		return errResult, nil
	}

	audio, err := staging.FromFile(path)
	if err != nil {
		s.logger.Error("staging failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("Error transcribing audio file: %v", err)), nil
	}

	text, err := s.transcribe(ctx, audio.Path, language, task)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error transcribing audio file: %v", err)), nil
	}

	s.persist(text, audio.Path)
	return mcp.NewToolResultText("Transcription:\n\n" + text), nil
}

func (s *Server) handleTranscribeAudio(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := req.RequireString("audio_data")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	language, task, errResult := languageAndTask(req)
	if errResult != nil {
		return errResult, nil
	}

	audio, err := staging.FromBase64(data, req.GetString("file_format", "wav"))
	if err != nil {
		s.logger.Error("staging failed", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("Error transcribing audio: %v", err)), nil
	}
	defer func() {
		if err := audio.Cleanup(); err != nil {
			s.logger.Warn("failed to remove temp audio file", zap.String("path", audio.Path), zap.Error(err))
		}
	}()

	text, err := s.transcribe(ctx, audio.Path, language, task)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error transcribing audio: %v", err)), nil
	}

	s.persist(text, audio.Path)
	return mcp.NewToolResultText("Transcription:\n\n" + text), nil
}

func (s *Server) handleDownloadVideo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	path, err := s.downloadMedia(ctx, url)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error downloading video: %v", err)), nil
	}

	return mcp.NewToolResultText(path), nil
}

func (s *Server) handleTranscribeVideo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	language, task, errResult := languageAndTask(req)
	if errResult != nil {
		return errResult, nil
	}
	keep := req.GetBool("keep_file", true)

	mediaPath, err := s.downloadMedia(ctx, url)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error downloading video: %v", err)), nil
	}

	text, err := s.transcribe(ctx, mediaPath, language, task)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error transcribing video: %v", err)), nil
	}

	s.persist(text, mediaPath)

	if !keep {
		if err := os.Remove(mediaPath); err != nil {
			s.logger.Warn("failed to delete downloaded media", zap.String("path", mediaPath), zap.Error(err))
		} else {
			s.logger.Info("deleted downloaded media", zap.String("path", mediaPath))
		}
	} else {
		s.logger.Info("keeping downloaded media", zap.String("path", mediaPath))
	}

	return mcp.NewToolResultText(fmt.Sprintf("Transcription of video (%s):\n\n%s", url, text)), nil
}

func languageAndTask(req mcp.CallToolRequest) (string, whisper.Task, *mcp.CallToolResult) {
	task, err := whisper.ParseTask(req.GetString("task", string(whisper.TaskTranscribe)))
	if err != nil {
		return "", "", mcp.NewToolResultError(err.Error())
	}
	return req.GetString("language", "en"), task, nil
}
