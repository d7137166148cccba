package audio

import (
	"fmt"
	"io"
	"os"

	wav "github.com/youpy/go-wav"
)

// Canonical audio parameters required by the inference engines.
const (
	CanonicalSampleRate    = 16000
	CanonicalChannels      = 1
	CanonicalBitsPerSample = 16
)

// Format describes the PCM layout of a WAV file.
type Format struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	BitsPerSample uint16
}

// Canonical reports whether the format is mono 16 kHz 16-bit PCM.
func (f Format) Canonical() bool {
	return f.AudioFormat == wav.AudioFormatPCM &&
		f.NumChannels == CanonicalChannels &&
		f.SampleRate == CanonicalSampleRate &&
		f.BitsPerSample == CanonicalBitsPerSample
}

// ProbeWAV reads the header of the WAV file at path. A missing file is
// FileNotFoundError; a file that is not parseable WAV is a plain error.
func ProbeWAV(path string) (*Format, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &FileNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	format, err := wav.NewReader(file).Format()
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV header of %s: %w", path, err)
	}

	return &Format{
		AudioFormat:   format.AudioFormat,
		NumChannels:   format.NumChannels,
		SampleRate:    format.SampleRate,
		BitsPerSample: format.BitsPerSample,
	}, nil
}

// WritePCM16 wraps raw little-endian 16-bit PCM samples in a WAV
// container. The sample count is derived from the data length, so the
// full payload must be in hand before calling.
func WritePCM16(w io.Writer, pcm []byte, sampleRate uint32, channels uint16) error {
	bytesPerFrame := 2 * uint32(channels)
	if bytesPerFrame == 0 || uint32(len(pcm))%bytesPerFrame != 0 {
		return fmt.Errorf("PCM payload of %d bytes is not a whole number of %d-byte frames", len(pcm), bytesPerFrame)
	}

	numSamples := uint32(len(pcm)) / bytesPerFrame
	writer := wav.NewWriter(w, numSamples, channels, sampleRate, CanonicalBitsPerSample)
	if _, err := writer.Write(pcm); err != nil {
		return fmt.Errorf("failed to write PCM data: %w", err)
	}
	return nil
}
