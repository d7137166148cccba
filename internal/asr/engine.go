package asr

import (
	"context"

	"github.com/Shubh587/wordcab-transcribe/internal/diarize"
	"github.com/Shubh587/wordcab-transcribe/internal/transcript"
)

// Transcriber produces raw timestamped segments from canonical audio.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, sourceLang string) ([]transcript.Segment, error)
}

// Diarizer attributes spans of canonical audio to speaker identities.
type Diarizer interface {
	Diarize(ctx context.Context, audioPath string, job *diarize.JobConfig) ([]transcript.SpeakerTurn, error)
}

// NoDiarizer reports no speaker turns, leaving every segment attributed
// to speaker 0. Used when diarization is disabled.
type NoDiarizer struct{}

// Diarize implements Diarizer.
func (NoDiarizer) Diarize(context.Context, string, *diarize.JobConfig) ([]transcript.SpeakerTurn, error) {
	return nil, nil
}
