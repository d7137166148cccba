package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shubh587/wordcab-transcribe/internal/api"
	"github.com/Shubh587/wordcab-transcribe/internal/asr"
	"github.com/Shubh587/wordcab-transcribe/internal/audio"
	"github.com/Shubh587/wordcab-transcribe/internal/config"
	"github.com/Shubh587/wordcab-transcribe/internal/diarize"
	"github.com/Shubh587/wordcab-transcribe/internal/storage/sqlite"
	"github.com/Shubh587/wordcab-transcribe/internal/transcript"
	"github.com/Shubh587/wordcab-transcribe/internal/watch"
	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting wordcab-transcribe", logger.String("config", *configPath))

	if err := run(cfg, log); err != nil {
		log.Fatal("Server failed", logger.Error(err))
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	// Storage is optional; without it responses are only returned to the
	// caller.
	var storage *sqlite.TranscriptionStorage
	if cfg.Storage.Enabled {
		db, err := sqlite.OpenDatabase(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		storage = sqlite.NewTranscriptionStorage(db, log)
		log.Info("Transcription storage enabled", logger.String("path", cfg.Storage.Path))

		sweeper := sqlite.NewRetentionSweeper(
			storage,
			time.Duration(cfg.Storage.RetentionDays)*24*time.Hour,
			log,
		)
		if err := sweeper.Start(); err != nil {
			return fmt.Errorf("failed to start retention sweeper: %w", err)
		}
		defer sweeper.Stop()
	}

	downloader, err := audio.NewDownloader(
		time.Duration(cfg.Audio.DownloadTimeoutSeconds)*time.Second,
		cfg.Audio.ProxyURL,
		log,
	)
	if err != nil {
		return fmt.Errorf("failed to create downloader: %w", err)
	}
	extractor := audio.NewExtractor(cfg.Audio.YTDLPPath, log)
	converter := audio.NewConverter(cfg.Audio.FFmpegPath, log)
	acquirer := audio.NewAcquirer(downloader, extractor, log)

	builder := diarize.NewBuilder(cfg.Diarization.ProfileDir, log)
	profile, err := diarize.ParseProfile(cfg.Diarization.Profile)
	if err != nil {
		return fmt.Errorf("failed to parse diarization profile: %w", err)
	}

	var diarizer asr.Diarizer = asr.NoDiarizer{}
	if cfg.Diarization.Enabled {
		diarizer = diarize.NewEngine(cfg.Diarization.Command, log)
		log.Info("Diarization enabled", logger.String("profile", cfg.Diarization.Profile))
	}

	transcriber := asr.NewWhisperTranscriber(asr.WhisperConfig{
		APIKey:  cfg.Whisper.APIKey,
		BaseURL: cfg.Whisper.BaseURL,
		Model:   cfg.Whisper.Model,
		Timeout: time.Duration(cfg.Whisper.TimeoutSeconds) * time.Second,
	}, log)

	service := asr.NewService(
		acquirer,
		converter,
		builder,
		transcriber,
		diarizer,
		storage,
		asr.Config{
			WorkDir:           cfg.Audio.WorkDir,
			DiarizeStorageDir: cfg.Diarization.StorageDir,
			DiarizeOutputDir:  cfg.Diarization.OutputDir,
			Profile:           profile,
			Anchor:            transcript.Anchor(cfg.Diarization.Anchor),
			RequestTimeout:    time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second,
		},
		log,
	)

	// The watcher no-ops when hot folder ingestion is disabled.
	watcher, err := watch.NewWatcher(service, cfg.Watch, log)
	if err != nil {
		return fmt.Errorf("failed to create hot folder watcher: %w", err)
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start hot folder watcher: %w", err)
	}
	defer watcher.Stop()

	router := api.NewRouter(service, cfg, log, storage)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router.Routes(),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", logger.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-sigChan:
		log.Info("Received shutdown signal", logger.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
