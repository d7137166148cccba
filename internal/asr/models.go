package asr

import (
	"fmt"
	"strings"

	"github.com/Shubh587/wordcab-transcribe/internal/transcript"
)

// DefaultSourceLang is assumed when a request does not name a language.
const DefaultSourceLang = "en"

// Options are the caller-tunable knobs for a single transcription
// request, validated at construction time.
type Options struct {
	Alignment  bool
	SourceLang string
	Timestamps transcript.Unit
}

// InvalidRequestOptionError reports a request option that failed
// validation before any work was started.
type InvalidRequestOptionError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidRequestOptionError) Error() string {
	return fmt.Sprintf("invalid value %q for option %q: %s", e.Value, e.Field, e.Reason)
}

// DefaultOptions returns the options applied when a caller sends none.
func DefaultOptions() Options {
	return Options{
		Alignment:  false,
		SourceLang: DefaultSourceLang,
		Timestamps: transcript.UnitSeconds,
	}
}

// NewOptions validates raw option values and fills in defaults for the
// ones left empty.
func NewOptions(alignment bool, sourceLang, timestamps string) (Options, error) {
	if sourceLang == "" {
		sourceLang = DefaultSourceLang
	}
	sourceLang = strings.ToLower(sourceLang)
	if !isISO639(sourceLang) {
		return Options{}, &InvalidRequestOptionError{
			Field:  "source_lang",
			Value:  sourceLang,
			Reason: "must be a two-letter ISO 639-1 code",
		}
	}

	if timestamps == "" {
		timestamps = string(transcript.UnitSeconds)
	}
	unit, err := transcript.ParseUnit(timestamps)
	if err != nil {
		return Options{}, &InvalidRequestOptionError{
			Field:  "timestamps",
			Value:  timestamps,
			Reason: "must be one of 'ms', 's', 'hms'",
		}
	}

	return Options{
		Alignment:  alignment,
		SourceLang: sourceLang,
		Timestamps: unit,
	}, nil
}

func isISO639(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'a' || code[i] > 'z' {
			return false
		}
	}
	return true
}

// Response is the caller-facing result of one transcription request.
// Words is only populated when the request asked for alignment.
type Response struct {
	Utterances []transcript.Utterance `json:"utterances"`
	Words      []transcript.Word      `json:"words,omitempty"`
	Alignment  bool                   `json:"alignment"`
	SourceLang string                 `json:"source_lang"`
	Timestamps string                 `json:"timestamps"`
	JobName    string                 `json:"job_name,omitempty"`
	RequestID  string                 `json:"request_id,omitempty"`
}

// Assemble builds the final response from formatted utterances and the
// options the request was processed with.
func Assemble(utterances []transcript.Utterance, words []transcript.Word, opts Options, jobName, requestID string) *Response {
	return &Response{
		Utterances: utterances,
		Words:      words,
		Alignment:  opts.Alignment,
		SourceLang: opts.SourceLang,
		Timestamps: string(opts.Timestamps),
		JobName:    jobName,
		RequestID:  requestID,
	}
}
