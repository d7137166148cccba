// Package transcript holds the transcript data model and the pure
// formatting steps between raw recognition output and the caller-facing
// response: text cleanup, timestamp unit conversion, and speaker
// attribution from diarization turns.
package transcript

// Segment is a raw recognition segment as produced by a speech-to-text
// engine. Start and End are milliseconds from the beginning of the
// audio.
type Segment struct {
	Start   float64
	End     float64
	Speaker int
	Text    string
}

// Word is a single recognized token with its raw millisecond offsets,
// used for word-level alignment output.
type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

// SpeakerTurn is one diarization result row: a single speaker active
// over a span of the audio, in milliseconds.
type SpeakerTurn struct {
	Start   float64
	End     float64
	Speaker int
}

// Utterance is a caller-facing transcript row. Offsets carry the unit
// requested by the caller and marshal accordingly.
type Utterance struct {
	Speaker int       `json:"speaker"`
	Start   Timestamp `json:"start"`
	End     Timestamp `json:"end"`
	Text    string    `json:"text"`
}
