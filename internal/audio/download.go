package audio

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/net/proxy"

	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
)

// downloadChunkSize is the read size used when streaming a response
// body to disk, so a large file never sits in memory whole.
const downloadChunkSize = 1024

// Downloader fetches remote media files over HTTP(S).
type Downloader struct {
	httpClient *http.Client
	logger     *logger.Logger
}

// NewDownloader creates a downloader. proxyURL, when non-empty, routes
// all requests through a SOCKS5 proxy (e.g. "socks5://127.0.0.1:1080").
func NewDownloader(timeout time.Duration, proxyURL string, log *logger.Logger) (*Downloader, error) {
	client := &http.Client{
		Timeout: timeout,
	}

	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse proxy URL: %w", err)
		}
		dialer, err := proxy.FromURL(parsed, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create proxy dialer: %w", err)
		}
		transport := &http.Transport{}
		if contextDialer, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = contextDialer.DialContext
		} else {
			transport.Dial = dialer.Dial
		}
		client.Transport = transport
	}

	return &Downloader{
		httpClient: client,
		logger:     log.Named("downloader"),
	}, nil
}

// Download performs a streamed GET of rawURL with the given headers and
// writes the body to a file named root plus an extension inferred from
// the response content type. Any status other than 200 returns
// DownloadFailedError before a destination file is created.
func (d *Downloader) Download(ctx context.Context, rawURL string, headers map[string]string, root string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	d.logger.Debug("Downloading audio file",
		logger.String("url", rawURL),
		logger.String("root", root),
	)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &DownloadFailedError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	dest := root + extensionForContentType(resp.Header.Get("Content-Type"))
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}

	written, err := copyChunks(out, resp.Body)
	if err != nil {
		out.Close()
		os.Remove(dest)
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("failed to close %s: %w", dest, err)
	}

	d.logger.Debug("Download complete",
		logger.String("path", dest),
		logger.Int64("bytes", written),
	)
	return dest, nil
}

// copyChunks streams src into dst in fixed-size chunks.
func copyChunks(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, downloadChunkSize)
	var written int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				return written, writeErr
			}
			written += int64(n)
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}

// extensionForContentType picks a destination file extension for a
// response content type. Common audio and video types map directly;
// anything else falls back to the platform MIME table, then to ".bin".
func extensionForContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".bin"
	}

	switch mediaType {
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/mp4", "video/mp4":
		return ".mp4"
	case "audio/m4a", "audio/x-m4a":
		return ".m4a"
	case "audio/ogg", "application/ogg":
		return ".ogg"
	case "audio/flac", "audio/x-flac":
		return ".flac"
	case "audio/webm", "video/webm":
		return ".webm"
	case "audio/aac":
		return ".aac"
	}

	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
