package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
	"github.com/Shubh587/wordcab-transcribe/pkg/subprocess"
)

// Converter normalizes acquired media into the canonical format the
// inference engines accept: mono, 16 kHz, 16-bit signed PCM WAV.
type Converter struct {
	toolPath string
	logger   *logger.Logger
}

// NewConverter creates a converter invoking the transcoder at toolPath,
// defaulting to "ffmpeg" on the search path.
func NewConverter(toolPath string, log *logger.Logger) *Converter {
	if toolPath == "" {
		toolPath = "ffmpeg"
	}
	return &Converter{
		toolPath: toolPath,
		logger:   log.Named("converter"),
	}
}

// Normalize transcodes the file at path into canonical WAV, replacing
// the extension with ".wav" and overwriting any existing output. Inputs
// already named ".wav" get a "_pcm.wav" suffix instead so the
// transcoder never reads and writes the same file. The input must exist
// before the transcoder is spawned; a missing input is
// FileNotFoundError, and a non-zero transcoder exit is
// ConversionFailedError carrying the tool's stderr.
func (c *Converter) Normalize(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", &FileNotFoundError{Path: path}
	}

	dest := strings.TrimSuffix(path, filepath.Ext(path)) + ".wav"
	if dest == path {
		dest = strings.TrimSuffix(path, ".wav") + "_pcm.wav"
	}

	command := []string{
		c.toolPath,
		"-i", path,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		"-y",
		dest,
	}

	c.logger.Debug("Converting to canonical WAV",
		logger.String("input", path),
		logger.String("output", dest),
	)

	result, err := subprocess.Run(ctx, command)
	if err != nil {
		return "", fmt.Errorf("failed to run %s: %w", c.toolPath, err)
	}
	if result.ExitCode != 0 {
		return "", &ConversionFailedError{
			Path:   path,
			Stderr: strings.TrimSpace(string(result.Stderr)),
		}
	}

	return dest, nil
}

// Cleanup deletes intermediate files produced for a request, ignoring
// paths that are empty or already gone. Safe to call more than once.
func (c *Converter) Cleanup(paths ...string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("Failed to remove intermediate file",
				logger.String("path", path),
				logger.Error(err),
			)
		}
	}
}
