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

// writeScript drops an executable shell script into a temp dir, used to
// stand in for the external transcoder and extractor tools.
func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

func TestNormalizeMissingInput(t *testing.T) {
	// The bogus tool path proves the transcoder is never spawned: a
	// spawn attempt would fail with a different error.
	converter := NewConverter("/nonexistent/transcoder", logger.Nop())

	_, err := converter.Normalize(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"))

	var nfErr *FileNotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestNormalizeProducesWavPath(t *testing.T) {
	// Fake transcoder that creates its last argument.
	tool := writeScript(t, "ffmpeg", "#!/bin/sh\nfor last; do :; done\n: > \"$last\"\n")

	dir := t.TempDir()
	input := filepath.Join(dir, "audio.mp3")
	require.NoError(t, os.WriteFile(input, []byte("fake"), 0o644))

	out, err := NewConverter(tool, logger.Nop()).Normalize(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audio.wav"), out)
	assert.FileExists(t, out)
}

func TestNormalizeWavInputAvoidsInPlaceWrite(t *testing.T) {
	tool := writeScript(t, "ffmpeg", "#!/bin/sh\nfor last; do :; done\n: > \"$last\"\n")

	dir := t.TempDir()
	input := filepath.Join(dir, "audio.wav")
	require.NoError(t, os.WriteFile(input, []byte("fake"), 0o644))

	out, err := NewConverter(tool, logger.Nop()).Normalize(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audio_pcm.wav"), out)
	assert.FileExists(t, input, "input must survive normalization")
}

func TestNormalizeSurfacesTranscoderStderr(t *testing.T) {
	tool := writeScript(t, "ffmpeg", "#!/bin/sh\necho \"unsupported codec\" >&2\nexit 1\n")

	input := filepath.Join(t.TempDir(), "audio.mp3")
	require.NoError(t, os.WriteFile(input, []byte("fake"), 0o644))

	_, err := NewConverter(tool, logger.Nop()).Normalize(context.Background(), input)

	var convErr *ConversionFailedError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, input, convErr.Path)
	assert.Contains(t, convErr.Stderr, "unsupported codec")
}

func TestCleanupIgnoresMissingFiles(t *testing.T) {
	converter := NewConverter("", logger.Nop())

	dir := t.TempDir()
	existing := filepath.Join(dir, "a.wav")
	require.NoError(t, os.WriteFile(existing, nil, 0o644))

	converter.Cleanup(existing, filepath.Join(dir, "gone.wav"), "")
	assert.NoFileExists(t, existing)

	// Second pass over the same paths is a no-op.
	converter.Cleanup(existing)
}
