// Package asr turns an audio reference into speaker-attributed
// utterances. It drives acquisition, normalization, transcription and
// diarization for one request and assembles the caller-facing response.
package asr

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Shubh587/wordcab-transcribe/internal/audio"
	"github.com/Shubh587/wordcab-transcribe/internal/diarize"
	"github.com/Shubh587/wordcab-transcribe/internal/storage/sqlite"
	"github.com/Shubh587/wordcab-transcribe/internal/transcript"
	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
)

// Config holds the request processing settings.
type Config struct {
	// WorkDir receives acquired and normalized audio, one file set per
	// request ID.
	WorkDir string
	// DiarizeStorageDir receives per-request diarization manifests.
	DiarizeStorageDir string
	// DiarizeOutputDir receives per-request diarization output.
	DiarizeOutputDir string
	Profile          diarize.Profile
	Anchor           transcript.Anchor
	// RequestTimeout bounds one request end to end, child processes
	// included. Zero means no limit.
	RequestTimeout time.Duration
}

// Request describes one transcription request flowing through the
// pipeline.
type Request struct {
	Source  audio.Source
	Options Options
	JobName string
}

// Service processes transcription requests end to end.
type Service struct {
	acquirer    *audio.Acquirer
	converter   *audio.Converter
	builder     *diarize.Builder
	transcriber Transcriber
	diarizer    Diarizer
	storage     *sqlite.TranscriptionStorage
	config      Config
	logger      *logger.Logger
}

// NewService creates a request processing service. The storage may be
// nil, in which case responses are not persisted.
func NewService(
	acquirer *audio.Acquirer,
	converter *audio.Converter,
	builder *diarize.Builder,
	transcriber Transcriber,
	diarizer Diarizer,
	storage *sqlite.TranscriptionStorage,
	config Config,
	log *logger.Logger,
) *Service {
	if config.Anchor == "" {
		config.Anchor = transcript.AnchorStart
	}
	if diarizer == nil {
		diarizer = NoDiarizer{}
	}

	return &Service{
		acquirer:    acquirer,
		converter:   converter,
		builder:     builder,
		transcriber: transcriber,
		diarizer:    diarizer,
		storage:     storage,
		config:      config,
		logger:      log.Named("asr"),
	}
}

// Process runs the full pipeline for one request: acquire the audio,
// normalize it to canonical PCM, transcribe and diarize, then format
// the result. Intermediate files are removed before it returns, whether
// the request succeeded or not.
func (s *Service) Process(ctx context.Context, req Request) (*Response, error) {
	if s.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RequestTimeout)
		defer cancel()
	}

	requestID := uuid.New().String()
	log := s.logger.WithRequestID(requestID)
	log.Info("Processing request",
		logger.String("source", string(req.Source.Kind)),
		logger.String("job_name", req.JobName))

	if req.Options.SourceLang == "" {
		req.Options.SourceLang = DefaultSourceLang
	}
	if req.Options.Timestamps == "" {
		req.Options.Timestamps = transcript.UnitSeconds
	}

	if err := os.MkdirAll(s.config.WorkDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}

	var intermediates []string
	defer func() { s.converter.Cleanup(intermediates...) }()

	root := filepath.Join(s.config.WorkDir, requestID)
	acquired, err := s.acquirer.Acquire(ctx, req.Source, root)
	if err != nil {
		return nil, err
	}
	if req.Source.Kind != audio.SourceLocal {
		intermediates = append(intermediates, acquired)
	}

	canonical, err := s.ensureCanonical(ctx, acquired)
	if err != nil {
		return nil, err
	}
	if canonical != acquired {
		intermediates = append(intermediates, canonical)
	}

	job, err := s.builder.BuildJobConfig(
		s.config.Profile,
		canonical,
		filepath.Join(s.config.DiarizeStorageDir, requestID),
		filepath.Join(s.config.DiarizeOutputDir, requestID),
	)
	if err != nil {
		return nil, err
	}

	segments, err := s.transcriber.Transcribe(ctx, canonical, req.Options.SourceLang)
	if err != nil {
		return nil, err
	}

	turns, err := s.diarizer.Diarize(ctx, canonical, job)
	if err != nil {
		return nil, err
	}
	segments = transcript.AssignSpeakers(segments, turns, s.config.Anchor)

	utterances, err := transcript.BuildUtterances(segments, req.Options.Timestamps)
	if err != nil {
		return nil, err
	}

	var words []transcript.Word
	if req.Options.Alignment {
		words = transcript.FormatWords(segments)
	}

	response := Assemble(utterances, words, req.Options, req.JobName, requestID)

	if s.storage != nil {
		if err := s.persist(req, response); err != nil {
			log.Error("Failed to persist transcription", logger.Error(err))
		}
	}

	log.Info("Request complete",
		logger.Int("segments", len(segments)),
		logger.Int("utterances", len(utterances)),
		logger.Int("speaker_turns", len(turns)))
	return response, nil
}

// ensureCanonical returns a path to canonical audio for the acquired
// file, transcoding only when a probe says it has to.
func (s *Service) ensureCanonical(ctx context.Context, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		format, err := audio.ProbeWAV(path)
		if err == nil && format.Canonical() {
			return path, nil
		}
	}
	return s.converter.Normalize(ctx, path)
}

func (s *Service) persist(req Request, response *Response) error {
	payload, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	_, err = s.storage.StoreTranscription(&sqlite.TranscriptionRecord{
		RequestID:  response.RequestID,
		JobName:    response.JobName,
		SourceKind: string(req.Source.Kind),
		SourceLang: response.SourceLang,
		Timestamps: response.Timestamps,
		Utterances: len(response.Utterances),
		Response:   string(payload),
		CreatedAt:  time.Now().UTC(),
	})
	return err
}
