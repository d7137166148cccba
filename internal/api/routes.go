package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shubh587/wordcab-transcribe/internal/config"
	"github.com/Shubh587/wordcab-transcribe/internal/storage/sqlite"
	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(service Processor, cfg *config.Config, log *logger.Logger, transcriptionStorage *sqlite.TranscriptionStorage) *Router {
	return &Router{
		handler:    NewHandler(service, transcriptionStorage, cfg, log),
		middleware: NewMiddleware(log),
		config:     cfg,
		logger:     log.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	features := r.config.Features

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		// Health check
		router.Get("/health", r.handler.GetHealth)

		// Cortex validates its key in the handler: batch callers may
		// send it in the payload instead of the header.
		if features.Cortex {
			router.Post("/cortex", r.handler.Cortex)
		}

		secured := router.With(r.middleware.APIKey(r.config.Server.APIKey))

		// Transcription request routes
		if features.AudioFile {
			secured.Post("/audio", r.handler.TranscribeAudioFile)
		}
		if features.AudioURL {
			secured.Post("/audio-url", r.handler.TranscribeAudioURL)
		}
		if features.YouTube {
			secured.Post("/youtube", r.handler.TranscribeYouTube)
		}
		if features.Live {
			secured.Get("/live", r.handler.HandleLiveWebSocket)
		}

		// Stored transcription routes
		if r.config.Storage.Enabled {
			secured.Get("/transcriptions", r.handler.GetRecentTranscriptions)
			secured.Get("/transcriptions/{requestID}", r.handler.GetTranscriptionByRequestID)
		}
	})

	return router
}
