package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Shubh587/wordcab-transcribe/internal/asr"
	"github.com/Shubh587/wordcab-transcribe/internal/audio"
	"github.com/Shubh587/wordcab-transcribe/internal/config"
	"github.com/Shubh587/wordcab-transcribe/internal/storage/sqlite"
	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
)

// Processor runs transcription requests end to end.
type Processor interface {
	Process(ctx context.Context, req asr.Request) (*asr.Response, error)
}

// Handler serves the transcription API
type Handler struct {
	service Processor
	storage *sqlite.TranscriptionStorage
	config  *config.Config
	logger  *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(service Processor, storage *sqlite.TranscriptionStorage, cfg *config.Config, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		storage: storage,
		config:  cfg,
		logger:  log.Named("api-handler"),
	}
}

// GetHealth reports service liveness
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// TranscribeAudioFile handles multipart audio uploads
func (h *Handler) TranscribeAudioFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes())
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "uploaded file too large")
			return
		}
		respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse multipart form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	opts, ok := h.requestOptions(w, r.FormValue("alignment"), r.FormValue("source_lang"), r.FormValue("timestamps"))
	if !ok {
		return
	}

	savedPath, err := h.saveUpload(file, header.Filename)
	if err != nil {
		h.logger.Error("Failed to save upload", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to save uploaded file")
		return
	}
	defer os.Remove(savedPath)

	h.process(w, r, asr.Request{Source: audio.LocalSource(savedPath), Options: opts})
}

// TranscribeAudioURL handles transcription of a remote audio file
func (h *Handler) TranscribeAudioURL(w http.ResponseWriter, r *http.Request) {
	var payload TranscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.URL == "" {
		respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	opts, err := asr.NewOptions(payload.Alignment, payload.SourceLang, payload.Timestamps)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.process(w, r, asr.Request{
		Source:  audio.URLSource(payload.URL, payload.URLHeaders),
		Options: opts,
	})
}

// TranscribeYouTube handles transcription of a video page's audio track
func (h *Handler) TranscribeYouTube(w http.ResponseWriter, r *http.Request) {
	var payload TranscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.URL == "" {
		respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	opts, err := asr.NewOptions(payload.Alignment, payload.SourceLang, payload.Timestamps)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.process(w, r, asr.Request{
		Source:  audio.VideoSource(payload.URL),
		Options: opts,
	})
}

// Cortex handles the batch-integration endpoint
func (h *Handler) Cortex(w http.ResponseWriter, r *http.Request) {
	var payload CortexPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// The key can ride in the header or in the payload.
	if key := h.config.Server.APIKey; key != "" {
		if r.Header.Get("X-API-Key") != key && payload.APIKey != key {
			respondError(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
	}

	if payload.Ping {
		respondJSON(w, http.StatusOK, PongResponse{Message: "pong"})
		return
	}

	urlType := payload.URLType
	if urlType == "" {
		urlType = "audio_url"
	}

	var source audio.Source
	switch urlType {
	case "audio_url":
		source = audio.URLSource(payload.URL, nil)
	case "youtube":
		source = audio.VideoSource(payload.URL)
	default:
		optErr := &asr.InvalidRequestOptionError{
			Field:  "url_type",
			Value:  urlType,
			Reason: "must be one of 'audio_url', 'youtube'",
		}
		respondError(w, http.StatusBadRequest, optErr.Error())
		return
	}

	if payload.URL == "" {
		respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	opts, err := asr.NewOptions(payload.Alignment, payload.SourceLang, payload.Timestamps)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.process(w, r, asr.Request{
		Source:  source,
		Options: opts,
		JobName: payload.JobName,
	})
}

// GetTranscriptionByRequestID returns a stored transcription response
func (h *Handler) GetTranscriptionByRequestID(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")

	record, err := h.storage.GetByRequestID(requestID)
	if err != nil {
		h.logger.Error("Failed to load transcription", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to load transcription")
		return
	}
	if record == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("no transcription with request ID %q", requestID))
		return
	}

	// The stored payload is the response exactly as first served.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(record.Response))
}

// GetRecentTranscriptions lists stored transcription records
func (h *Handler) GetRecentTranscriptions(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw))
			return
		}
		limit = parsed
	}

	var records []*sqlite.TranscriptionRecord
	var err error
	if jobName := r.URL.Query().Get("job_name"); jobName != "" {
		records, err = h.storage.GetByJobName(jobName, limit)
	} else {
		records, err = h.storage.GetRecentTranscriptions(limit)
	}
	if err != nil {
		h.logger.Error("Failed to list transcriptions", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list transcriptions")
		return
	}

	if records == nil {
		records = []*sqlite.TranscriptionRecord{}
	}
	respondJSON(w, http.StatusOK, records)
}

func (h *Handler) maxUploadBytes() int64 {
	return int64(h.config.Server.MaxUploadMB) << 20
}

// requestOptions validates raw option values, answering the request
// itself when they are malformed.
func (h *Handler) requestOptions(w http.ResponseWriter, alignment, sourceLang, timestamps string) (asr.Options, bool) {
	align := false
	if alignment != "" {
		parsed, err := strconv.ParseBool(alignment)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid alignment value %q", alignment))
			return asr.Options{}, false
		}
		align = parsed
	}

	opts, err := asr.NewOptions(align, sourceLang, timestamps)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return asr.Options{}, false
	}
	return opts, true
}

// saveUpload spools a multipart upload into the work directory so the
// pipeline can read it from disk. The caller removes it afterwards.
func (h *Handler) saveUpload(file multipart.File, filename string) (string, error) {
	if err := os.MkdirAll(h.config.Audio.WorkDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}

	path := filepath.Join(h.config.Audio.WorkDir, "upload-"+uuid.New().String()+filepath.Ext(filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

func (h *Handler) process(w http.ResponseWriter, r *http.Request, req asr.Request) {
	resp, err := h.service.Process(r.Context(), req)
	if err != nil {
		h.respondProcessError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// respondProcessError maps pipeline failures to HTTP status codes.
func (h *Handler) respondProcessError(w http.ResponseWriter, err error) {
	var optErr *asr.InvalidRequestOptionError
	var notFound *audio.FileNotFoundError
	var download *audio.DownloadFailedError

	switch {
	case errors.As(err, &optErr):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &download):
		respondError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		h.logger.Error("Request failed", logger.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}
