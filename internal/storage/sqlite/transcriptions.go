package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
)

// TranscriptionStorage handles storage of transcription records
type TranscriptionStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewTranscriptionStorage creates a new SQLite transcription storage
func NewTranscriptionStorage(db *sql.DB, log *logger.Logger) *TranscriptionStorage {
	storage := &TranscriptionStorage{
		db:     db,
		logger: log.Named("sqlite-transcriptions"),
	}

	// Initialize database
	if err := storage.initDB(); err != nil {
		log.Error("Failed to initialize transcription storage", logger.Error(err))
	}

	return storage
}

// initDB initializes the database tables
func (s *TranscriptionStorage) initDB() error {
	// Create transcriptions table
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS transcriptions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			request_id TEXT NOT NULL UNIQUE,
			job_name TEXT,
			source_kind TEXT NOT NULL,
			source_lang TEXT NOT NULL,
			timestamps TEXT NOT NULL,
			utterances INTEGER NOT NULL,
			response TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create transcriptions table: %w", err)
	}

	// Create indexes for performance
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_transcriptions_job_name ON transcriptions(job_name)`,
		`CREATE INDEX IF NOT EXISTS idx_transcriptions_created_at ON transcriptions(created_at)`,
	}

	for _, indexSQL := range indexes {
		_, err = s.db.Exec(indexSQL)
		if err != nil {
			return fmt.Errorf("failed to create transcription index: %w", err)
		}
	}

	return nil
}

// StoreTranscription stores a transcription record
func (s *TranscriptionStorage) StoreTranscription(record *TranscriptionRecord) (int64, error) {
	// Insert record
	result, err := s.db.Exec(
		`INSERT INTO transcriptions
		(request_id, job_name, source_kind, source_lang, timestamps, utterances, response, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RequestID,
		record.JobName,
		record.SourceKind,
		record.SourceLang,
		record.Timestamps,
		record.Utterances,
		record.Response,
		record.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transcription: %w", err)
	}

	// Get ID
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return id, nil
}

// GetByRequestID returns the transcription for a specific request ID,
// or nil when no such record exists
func (s *TranscriptionStorage) GetByRequestID(requestID string) (*TranscriptionRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, request_id, job_name, source_kind, source_lang, timestamps, utterances, response, created_at
		FROM transcriptions
		WHERE request_id = ?`,
		requestID,
	)

	record, err := s.scanTranscriptionRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transcription by request ID: %w", err)
	}

	return record, nil
}

// GetByJobName returns transcriptions submitted under a specific job name
func (s *TranscriptionStorage) GetByJobName(jobName string, limit int) ([]*TranscriptionRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, request_id, job_name, source_kind, source_lang, timestamps, utterances, response, created_at
		FROM transcriptions
		WHERE job_name = ?
		ORDER BY created_at DESC
		LIMIT ?`,
		jobName, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcriptions by job name: %w", err)
	}
	defer rows.Close()

	return s.scanTranscriptionRows(rows)
}

// GetRecentTranscriptions returns recent transcriptions across all jobs
func (s *TranscriptionStorage) GetRecentTranscriptions(limit int) ([]*TranscriptionRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, request_id, job_name, source_kind, source_lang, timestamps, utterances, response, created_at
		FROM transcriptions
		ORDER BY created_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent transcriptions: %w", err)
	}
	defer rows.Close()

	return s.scanTranscriptionRows(rows)
}

// DeleteOlderThan removes transcriptions created before the cutoff and
// returns how many were deleted
func (s *TranscriptionStorage) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result, err := s.db.Exec(
		`DELETE FROM transcriptions WHERE created_at < ?`,
		cutoff.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old transcriptions: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get deleted row count: %w", err)
	}

	return deleted, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// scanTranscriptionRow scans a single database row into a TranscriptionRecord
func (s *TranscriptionStorage) scanTranscriptionRow(row scanner) (*TranscriptionRecord, error) {
	var record TranscriptionRecord
	var jobName sql.NullString
	var createdAt string

	if err := row.Scan(
		&record.ID,
		&record.RequestID,
		&jobName,
		&record.SourceKind,
		&record.SourceLang,
		&record.Timestamps,
		&record.Utterances,
		&record.Response,
		&createdAt,
	); err != nil {
		return nil, err
	}

	// Parse timestamps
	var err error
	record.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	// Handle nullable job_name field
	if jobName.Valid {
		record.JobName = jobName.String
	}

	return &record, nil
}

// scanTranscriptionRows scans database rows into TranscriptionRecord structs
func (s *TranscriptionStorage) scanTranscriptionRows(rows *sql.Rows) ([]*TranscriptionRecord, error) {
	var records []*TranscriptionRecord
	for rows.Next() {
		record, err := s.scanTranscriptionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transcription: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
