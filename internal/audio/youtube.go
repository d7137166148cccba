package audio

import (
	"context"
	"fmt"
	"strings"

	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
	"github.com/Shubh587/wordcab-transcribe/pkg/subprocess"
)

// Extractor pulls the audio track out of video-sharing-site URLs with
// an external downloader tool (yt-dlp or compatible).
type Extractor struct {
	toolPath string
	logger   *logger.Logger
}

// NewExtractor creates an extractor invoking the tool at toolPath,
// defaulting to "yt-dlp" on the search path.
func NewExtractor(toolPath string, log *logger.Logger) *Extractor {
	if toolPath == "" {
		toolPath = "yt-dlp"
	}
	return &Extractor{
		toolPath: toolPath,
		logger:   log.Named("extractor"),
	}
}

// ExtractAudio downloads the best available audio-only stream of url
// and converts it to WAV through the tool's own post-processing. The
// tool appends the ".wav" suffix to the output template itself, so the
// result lands at root + ".wav".
func (e *Extractor) ExtractAudio(ctx context.Context, url, root string) (string, error) {
	command := []string{
		e.toolPath,
		"--format", "bestaudio",
		"--extract-audio",
		"--audio-format", "wav",
		"--output", root,
		url,
	}

	e.logger.Debug("Extracting audio track",
		logger.String("url", url),
		logger.String("root", root),
	)

	result, err := subprocess.Run(ctx, command)
	if err != nil {
		return "", fmt.Errorf("failed to run %s: %w", e.toolPath, err)
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf("%s exited with code %d: %s",
			e.toolPath, result.ExitCode, strings.TrimSpace(string(result.Stderr)))
	}

	return root + ".wav", nil
}
