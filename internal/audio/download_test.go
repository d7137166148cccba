package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
)

func newTestDownloader(t *testing.T) *Downloader {
	t.Helper()
	d, err := NewDownloader(10*time.Second, "", logger.Nop())
	require.NoError(t, err)
	return d
}

func TestDownloadWritesFileWithInferredExtension(t *testing.T) {
	payload := make([]byte, 3000)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "audio/wav")
		w.Write(payload)
	}))
	defer server.Close()

	root := filepath.Join(t.TempDir(), "req-1")
	headers := map[string]string{"Authorization": "Bearer token-123"}

	path, err := newTestDownloader(t).Download(context.Background(), server.URL, headers, root)
	require.NoError(t, err)
	assert.Equal(t, root+".wav", path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDownloadNon200CreatesNoFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	dir := t.TempDir()
	_, err := newTestDownloader(t).Download(context.Background(), server.URL, nil, filepath.Join(dir, "req-2"))

	var dlErr *DownloadFailedError
	require.ErrorAs(t, err, &dlErr)
	assert.Equal(t, http.StatusNotFound, dlErr.StatusCode)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no destination file may be created on a failed download")
}

func TestNewDownloaderRejectsBadProxy(t *testing.T) {
	_, err := NewDownloader(time.Second, "::not-a-url", logger.Nop())
	require.Error(t, err)

	_, err = NewDownloader(time.Second, "ftp://127.0.0.1:1080", logger.Nop())
	require.Error(t, err, "non-SOCKS schemes are not supported")
}

func TestExtensionForContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"audio/wav", ".wav"},
		{"audio/x-wav; charset=binary", ".wav"},
		{"audio/mpeg", ".mp3"},
		{"audio/mp4", ".mp4"},
		{"audio/flac", ".flac"},
		{"application/ogg", ".ogg"},
		{"bogus", ".bin"},
		{"", ".bin"},
		{"application/x-unknown-subtype-xyz", ".bin"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extensionForContentType(tt.contentType), "content type %q", tt.contentType)
	}
}
