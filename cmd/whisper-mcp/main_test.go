package main

import (
	"errors"
	"testing"

	"github.com/fmueller/whisper-mcp/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestShouldPrintUsageHint(t *testing.T) {
	t.Parallel()

	require.True(t, shouldPrintUsageHint(errors.New("unknown command \"bad\" for \"whisper-mcp\"")))
	require.True(t, shouldPrintUsageHint(errors.New("unknown flag: --oops")))
	require.True(t, shouldPrintUsageHint(errors.New("accepts 1 arg(s), received 0")))
	require.False(t, shouldPrintUsageHint(errors.New("create downloads directory /nope: permission denied")))
	require.False(t, shouldPrintUsageHint(nil))
}

func TestHelpHintTarget(t *testing.T) {
	t.Parallel()

	root := cli.NewRootCmd()
	require.Equal(t, "whisper-mcp", helpHintTarget(root, []string{"--badflag"}))
	require.Equal(t, "whisper-mcp", helpHintTarget(root, []string{"badcmd"}))
	require.Equal(t, "whisper-mcp version", helpHintTarget(root, []string{"version"}))
}
