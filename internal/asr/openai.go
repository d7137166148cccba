package asr

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Shubh587/wordcab-transcribe/internal/transcript"
	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
)

// WhisperConfig holds the settings for the hosted Whisper backend.
type WhisperConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// WhisperTranscriber runs speech recognition through the OpenAI audio
// transcription API.
type WhisperTranscriber struct {
	client openai.Client
	model  string
	logger *logger.Logger
}

// NewWhisperTranscriber creates a transcriber for the configured model,
// defaulting to whisper-1.
func NewWhisperTranscriber(cfg WhisperConfig, log *logger.Logger) *WhisperTranscriber {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	model := cfg.Model
	if model == "" {
		model = openai.AudioModelWhisper1
	}

	return &WhisperTranscriber{
		client: openai.NewClient(opts...),
		model:  model,
		logger: log.Named("whisper"),
	}
}

// verboseTranscription mirrors the verbose_json response body. The
// SDK's typed Transcription only surfaces the flat text, so the segment
// list is read from the raw payload.
type verboseTranscription struct {
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe sends the audio file to the API and converts the returned
// segment list to millisecond offsets.
func (w *WhisperTranscriber) Transcribe(ctx context.Context, audioPath, sourceLang string) ([]transcript.Segment, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file %s: %w", audioPath, err)
	}
	defer file.Close()

	params := openai.AudioTranscriptionNewParams{
		File:           file,
		Model:          openai.AudioModel(w.model),
		ResponseFormat: openai.AudioResponseFormatVerboseJSON,
	}
	if sourceLang != "" {
		params.Language = openai.String(sourceLang)
	}

	w.logger.Debug("Requesting transcription",
		logger.String("path", audioPath),
		logger.String("model", w.model),
		logger.String("language", sourceLang))

	result, err := w.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to transcribe %s: %w", audioPath, err)
	}

	var verbose verboseTranscription
	if err := json.Unmarshal([]byte(result.RawJSON()), &verbose); err != nil {
		return nil, fmt.Errorf("failed to parse verbose transcription: %w", err)
	}

	if len(verbose.Segments) == 0 {
		if verbose.Text == "" {
			return nil, nil
		}
		// Some backends return plain text with no segment detail.
		return []transcript.Segment{{
			Start: 0,
			End:   verbose.Duration * 1000,
			Text:  verbose.Text,
		}}, nil
	}

	segments := make([]transcript.Segment, 0, len(verbose.Segments))
	for _, s := range verbose.Segments {
		segments = append(segments, transcript.Segment{
			Start: s.Start * 1000,
			End:   s.End * 1000,
			Text:  s.Text,
		})
	}

	w.logger.Debug("Transcription returned", logger.Int("segments", len(segments)))
	return segments, nil
}
