// Package audio turns an arbitrary audio reference (a local file, a
// remote URL, or a video-sharing link) into a canonical mono 16 kHz
// 16-bit PCM WAV file on local disk, ready for the inference engines.
package audio

import (
	"context"
	"fmt"
	"os"

	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
)

// Acquirer resolves a Source to a file on local disk, selecting the
// fetch strategy by source kind.
type Acquirer struct {
	downloader *Downloader
	extractor  *Extractor
	logger     *logger.Logger
}

// NewAcquirer creates an acquirer from its two fetch strategies.
func NewAcquirer(downloader *Downloader, extractor *Extractor, log *logger.Logger) *Acquirer {
	return &Acquirer{
		downloader: downloader,
		extractor:  extractor,
		logger:     log.Named("acquirer"),
	}
}

// Acquire fetches the source's audio and returns its local path.
// Remote fetches root their output at root; local sources pass through
// without copying, failing with FileNotFoundError when the path does
// not exist.
func (a *Acquirer) Acquire(ctx context.Context, source Source, root string) (string, error) {
	switch source.Kind {
	case SourceLocal:
		if _, err := os.Stat(source.Path); err != nil {
			return "", &FileNotFoundError{Path: source.Path}
		}
		a.logger.Debug("Using local audio file", logger.String("path", source.Path))
		return source.Path, nil

	case SourceURL:
		return a.downloader.Download(ctx, source.URL, source.Headers, root)

	case SourceVideo:
		return a.extractor.ExtractAudio(ctx, source.URL, root)

	default:
		return "", fmt.Errorf("unknown source kind: %s", source.Kind)
	}
}
