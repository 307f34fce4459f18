// Package whisper defines the transcription engine contract and an
// implementation backed by an external mlx_whisper-compatible executable.
package whisper

import (
	"context"
	"errors"
	"fmt"
)

// DefaultModel is the model identifier handed to the engine when the caller
// does not pick one. The value is opaque to this program.
const DefaultModel = "mlx-community/whisper-large-v3-turbo"

// ErrEngine wraps any failure reported by the underlying engine.
var ErrEngine = errors.New("transcription engine failed")

// Task selects between in-language transcription and translation.
type Task string

const (
	TaskTranscribe Task = "transcribe"
	TaskTranslate  Task = "translate"
)

// ParseTask validates a task name. An empty value defaults to transcription.
func ParseTask(value string) (Task, error) {
	switch Task(value) {
	case TaskTranscribe, TaskTranslate:
		return Task(value), nil
	case "":
		return TaskTranscribe, nil
	default:
		return "", fmt.Errorf("unknown task %q (expected %q or %q)", value, TaskTranscribe, TaskTranslate)
	}
}

// Request holds parameters for one transcription call. An empty Language
// lets the engine auto-detect.
type Request struct {
	AudioPath string
	Model     string
	Language  string
	Task      Task
}

// Engine transcribes a local audio file to plain text.
type Engine interface {
	Transcribe(ctx context.Context, req Request) (string, error)
}
