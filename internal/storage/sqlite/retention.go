package sqlite

import (
	"context"
	"sync"
	"time"

	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
)

// retentionSweepInterval is how often expired records are purged.
const retentionSweepInterval = time.Hour

// RetentionSweeper periodically deletes transcription records older
// than the configured age, keeping the database bounded.
type RetentionSweeper struct {
	storage *TranscriptionStorage
	maxAge  time.Duration
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	logger  *logger.Logger
}

// NewRetentionSweeper creates a sweeper removing records older than
// maxAge. A maxAge of zero keeps records forever.
func NewRetentionSweeper(storage *TranscriptionStorage, maxAge time.Duration, log *logger.Logger) *RetentionSweeper {
	ctx, cancel := context.WithCancel(context.Background())
	return &RetentionSweeper{
		storage: storage,
		maxAge:  maxAge,
		ctx:     ctx,
		cancel:  cancel,
		logger:  log.Named("retention"),
	}
}

// Start starts the sweep loop
func (s *RetentionSweeper) Start() error {
	if s.maxAge <= 0 {
		s.logger.Info("Record retention is unlimited, not starting sweeper")
		return nil
	}

	s.logger.Info("Starting retention sweeper",
		logger.Duration("max_age", s.maxAge))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(retentionSweepInterval)
		defer ticker.Stop()

		s.sweep()
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
	return nil
}

// Stop stops the sweep loop
func (s *RetentionSweeper) Stop() error {
	s.cancel()
	s.wg.Wait()
	return nil
}

func (s *RetentionSweeper) sweep() {
	cutoff := time.Now().UTC().Add(-s.maxAge)
	deleted, err := s.storage.DeleteOlderThan(cutoff)
	if err != nil {
		s.logger.Error("Failed to delete expired transcriptions", logger.Error(err))
		return
	}
	if deleted > 0 {
		s.logger.Info("Deleted expired transcriptions",
			logger.Int64("deleted", deleted),
			logger.Time("cutoff", cutoff))
	}
}
