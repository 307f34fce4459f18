package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fmueller/whisper-mcp/internal/mcpserver"
	"github.com/fmueller/whisper-mcp/internal/whisper"
)

func TestRunServeStartsServer(t *testing.T) {
	t.Parallel()

	var served *mcpserver.Server
	app := &appState{
		model:        "test-model",
		downloadsDir: t.TempDir(),
		serveFn: func(_ context.Context, srv *mcpserver.Server) error {
			served = srv
			return nil
		},
	}

	require.NoError(t, app.runServe(context.Background()))
	require.NotNil(t, served)
}

func TestRunServeContinuesWhenYTDLPInstallFails(t *testing.T) {
	t.Parallel()

	servedCalls := 0
	app := &appState{
		downloadsDir: t.TempDir(),
		installYTDLP: true,
		installFn: func(_ context.Context) error {
			return errors.New("no network")
		},
		serveFn: func(_ context.Context, _ *mcpserver.Server) error {
			servedCalls++
			return nil
		},
	}

	require.NoError(t, app.runServe(context.Background()))
	require.Equal(t, 1, servedCalls)
}

func TestRootCommandDefaults(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	model, err := cmd.Flags().GetString("model")
	require.NoError(t, err)
	require.Equal(t, whisper.DefaultModel, model)

	install, err := cmd.Flags().GetBool("install-ytdlp")
	require.NoError(t, err)
	require.True(t, install)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	cmd := NewRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "whisper-mcp v")
}
