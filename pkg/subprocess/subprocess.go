// Package subprocess runs external commands with captured output.
//
// Media acquisition and conversion shell out to tools like ffmpeg and
// yt-dlp; this package is the single place those child processes are
// spawned so that cancellation and output capture behave the same
// everywhere.
package subprocess

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Result holds the outcome of a finished command.
type Result struct {
	// ExitCode is the command's exit status. Zero means success.
	ExitCode int
	// Stdout is everything the command wrote to standard output.
	Stdout []byte
	// Stderr is everything the command wrote to standard error.
	Stderr []byte
}

// Run executes command (program followed by its arguments) and waits for
// it to finish, capturing both output streams. A non-zero exit status is
// not an error at this layer; callers inspect Result.ExitCode. Run only
// returns an error when the process could not be started or when ctx was
// cancelled, in which case the child is killed before returning.
func Run(ctx context.Context, command []string) (*Result, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			// CommandContext kills the child on cancellation, which
			// surfaces as an exit error; report the cancellation instead.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, fmt.Errorf("command %s interrupted: %w", command[0], ctxErr)
			}
			return result, nil
		}
		return nil, fmt.Errorf("failed to run %s: %w", command[0], err)
	}

	return result, nil
}
