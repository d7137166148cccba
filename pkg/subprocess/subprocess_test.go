package subprocess

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesStdout(t *testing.T) {
	result, err := Run(context.Background(), []string{"echo", "hello"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "hello\n", string(result.Stdout))
	assert.Empty(t, result.Stderr)
}

func TestRunCapturesStderr(t *testing.T) {
	result, err := Run(context.Background(), []string{"sh", "-c", "echo oops >&2"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "oops\n", string(result.Stderr))
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	result, err := Run(context.Background(), []string{"sh", "-c", "echo bad >&2; exit 3"})
	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "bad\n", string(result.Stderr))
}

func TestRunMissingProgram(t *testing.T) {
	_, err := Run(context.Background(), []string{"definitely-not-a-real-program-5a1b"})
	require.Error(t, err)
}

func TestRunEmptyCommand(t *testing.T) {
	_, err := Run(context.Background(), nil)
	require.Error(t, err)
}

func TestRunContextCancellationKillsChild(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Run(ctx, []string{"sleep", "30"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}
