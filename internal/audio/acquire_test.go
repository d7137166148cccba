package audio

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
)

func newTestAcquirer(t *testing.T) *Acquirer {
	t.Helper()
	return NewAcquirer(newTestDownloader(t), NewExtractor("", logger.Nop()), logger.Nop())
}

func TestAcquireLocalPassthrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.wav")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	got, err := newTestAcquirer(t).Acquire(context.Background(), LocalSource(path), filepath.Join(t.TempDir(), "root"))
	require.NoError(t, err)
	assert.Equal(t, path, got, "local acquisition must not copy the file")
}

func TestAcquireLocalMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := newTestAcquirer(t).Acquire(context.Background(), LocalSource(filepath.Join(dir, "missing.wav")), filepath.Join(dir, "root"))

	var nfErr *FileNotFoundError
	require.ErrorAs(t, err, &nfErr)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "acquisition of a missing file must not write anything")
}

func TestAcquireUnknownKind(t *testing.T) {
	_, err := newTestAcquirer(t).Acquire(context.Background(), Source{Kind: SourceKind("carrier-pigeon")}, "root")
	require.Error(t, err)
}
