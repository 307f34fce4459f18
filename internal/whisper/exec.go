package whisper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DefaultExecutable is the engine binary looked up on PATH when no override
// is configured.
const DefaultExecutable = "mlx_whisper"

// commandRunner abstracts process execution for testability. Run returns the
// trimmed stderr of the command alongside its error.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	err := cmd.Run()
	return strings.TrimSpace(stderr.String()), err
}

// ExecEngine runs the transcription engine as a subprocess. The engine is
// asked to write a plain-text transcript into a per-call output directory
// which is removed after the text has been read.
type ExecEngine struct {
	Executable string
	Logger     *zap.Logger

	runner commandRunner
}

func NewExecEngine(executable string, logger *zap.Logger) *ExecEngine {
	if strings.TrimSpace(executable) == "" {
		executable = DefaultExecutable
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecEngine{Executable: executable, Logger: logger, runner: execRunner{}}
}

func (e *ExecEngine) Transcribe(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.AudioPath) == "" {
		return "", errors.New("audio path is required")
	}

	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = DefaultModel
	}
	task := req.Task
	if task == "" {
		task = TaskTranscribe
	}

	outDir, err := os.MkdirTemp("", "whisper-mcp-out-")
	if err != nil {
		return "", fmt.Errorf("create engine output directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	args := buildEngineArgs(req.AudioPath, model, req.Language, task, outDir)
	e.Logger.Debug("running transcription engine", zap.String("engine", e.Executable), zap.Strings("args", args))

	if stderr, err := e.runner.Run(ctx, e.Executable, args...); err != nil {
		if stderr != "" {
			return "", fmt.Errorf("%w: %v (%s)", ErrEngine, err, stderr)
		}
		return "", fmt.Errorf("%w: %v", ErrEngine, err)
	}

	txtOut := filepath.Join(outDir, transcriptBaseName(req.AudioPath)+".txt")
	content, err := os.ReadFile(txtOut)
	if err != nil {
		return "", fmt.Errorf("%w: read engine output: %v", ErrEngine, err)
	}

	return strings.TrimSpace(string(content)), nil
}

func buildEngineArgs(audioPath, model, language string, task Task, outDir string) []string {
	args := []string{
		audioPath,
		"--model", model,
		"--task", string(task),
		"--output-dir", outDir,
		"--output-format", "txt",
		"--verbose", "False",
	}

	lang := strings.TrimSpace(language)
	if lang != "" && lang != "auto" {
		args = append(args, "--language", lang)
	}

	return args
}

// transcriptBaseName mirrors how the engine names its output files: the
// audio basename with the extension dropped.
func transcriptBaseName(audioPath string) string {
	base := filepath.Base(audioPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
