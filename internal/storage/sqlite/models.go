package sqlite

import "time"

// TranscriptionRecord represents a finished transcription request
type TranscriptionRecord struct {
	ID         int64     `json:"id"`
	RequestID  string    `json:"request_id"`
	JobName    string    `json:"job_name,omitempty"`
	SourceKind string    `json:"source_kind"`
	SourceLang string    `json:"source_lang"`
	Timestamps string    `json:"timestamps"`
	Utterances int       `json:"utterances"`
	Response   string    `json:"response"`
	CreatedAt  time.Time `json:"created_at"`
}
