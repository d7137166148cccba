// Package watch ingests audio files dropped into a hot folder and
// writes the transcription response beside them.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Shubh587/wordcab-transcribe/internal/asr"
	"github.com/Shubh587/wordcab-transcribe/internal/audio"
	"github.com/Shubh587/wordcab-transcribe/internal/config"
	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
)

// Processor runs transcription requests end to end.
type Processor interface {
	Process(ctx context.Context, req asr.Request) (*asr.Response, error)
}

// Watcher monitors a directory and transcribes every audio file that
// appears in it, once write activity on the file has settled.
type Watcher struct {
	service Processor
	config  config.WatchConfig
	watcher *fsnotify.Watcher
	pending map[string]*time.Timer
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	logger  *logger.Logger
}

// NewWatcher creates a hot folder watcher feeding the given service.
func NewWatcher(service Processor, cfg config.WatchConfig, log *logger.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		service: service,
		config:  cfg,
		watcher: fsWatcher,
		pending: make(map[string]*time.Timer),
		ctx:     ctx,
		cancel:  cancel,
		logger:  log.Named("watch"),
	}, nil
}

// Start begins watching the configured directory.
func (w *Watcher) Start() error {
	if !w.config.Enabled {
		w.logger.Info("Hot folder ingestion is disabled, not starting")
		return nil
	}

	if err := os.MkdirAll(w.config.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create watch directory: %w", err)
	}
	if err := w.watcher.Add(w.config.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.config.Dir, err)
	}

	w.logger.Info("Watching hot folder",
		logger.String("dir", w.config.Dir),
		logger.Int("settle_seconds", w.config.SettleSeconds))

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.watchLoop()
	}()
	return nil
}

// Stop stops watching and cancels in-flight work.
func (w *Watcher) Stop() error {
	w.cancel()
	w.watcher.Close()
	w.wg.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, timer := range w.pending {
		timer.Stop()
	}
	return nil
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", logger.Error(err))
		}
	}
}

// handleEvent schedules a file for ingestion once write activity on it
// settles. Every new event on the same file resets its timer.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if !w.isAudioFile(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[event.Name]; ok {
		timer.Stop()
	}
	w.pending[event.Name] = time.AfterFunc(w.settleDelay(), func() {
		w.ingest(event.Name)
	})
	w.logger.Debug("File activity detected", logger.String("path", event.Name))
}

func (w *Watcher) settleDelay() time.Duration {
	if w.config.SettleSeconds < 1 {
		return time.Second
	}
	return time.Duration(w.config.SettleSeconds) * time.Second
}

func (w *Watcher) isAudioFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range w.config.Extensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// ingest runs the pipeline for one settled file and writes the
// response JSON beside it, or into the configured output directory.
func (w *Watcher) ingest(path string) {
	w.mu.Lock()
	delete(w.pending, path)
	w.mu.Unlock()

	if w.ctx.Err() != nil {
		return
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}

	log := w.logger.With(logger.String("path", path))
	log.Info("Ingesting file")

	resp, err := w.service.Process(w.ctx, asr.Request{
		Source:  audio.LocalSource(path),
		Options: asr.DefaultOptions(),
	})
	if err != nil {
		log.Error("Failed to transcribe file", logger.Error(err))
		return
	}

	outPath, err := w.writeResponse(path, resp)
	if err != nil {
		log.Error("Failed to write transcript", logger.Error(err))
		return
	}
	log.Info("Transcript written", logger.String("transcript", outPath))
}

func (w *Watcher) writeResponse(inputPath string, resp *asr.Response) (string, error) {
	outDir := w.config.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(inputPath)
	} else if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outPath := filepath.Join(outDir, stem+".transcript.json")

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	return outPath, nil
}
