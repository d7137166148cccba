package transcript

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanPunctuation strips recognition artifacts from segment text.
// Literal "..." markers are removed first, then stray spaces before
// closing punctuation are collapsed, then whitespace runs are squeezed
// to single spaces and the ends trimmed. The ellipsis pass must run
// before the spacing fixes so that an ellipsis next to punctuation
// disappears completely.
func CleanPunctuation(text string) string {
	text = strings.ReplaceAll(text, "...", "")
	text = strings.ReplaceAll(text, " ?", "?")
	text = strings.ReplaceAll(text, " !", "!")
	text = strings.ReplaceAll(text, " .", ".")
	text = strings.ReplaceAll(text, " ,", ",")
	text = strings.ReplaceAll(text, " :", ":")
	text = strings.ReplaceAll(text, " ;", ";")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// IsEmpty reports whether text contains nothing but periods and
// whitespace. Recognition engines emit such segments over silence;
// they are dropped rather than surfaced to the caller.
func IsEmpty(text string) bool {
	text = strings.ReplaceAll(text, ".", "")
	text = whitespaceRun.ReplaceAllString(text, "")
	return text == ""
}

// FormatWords reshapes raw engine segments into word records for
// alignment output, trimming the text and preserving order. Offsets
// pass through untouched.
func FormatWords(segments []Segment) []Word {
	words := make([]Word, 0, len(segments))
	for _, segment := range segments {
		words = append(words, Word{
			Start: segment.Start,
			End:   segment.End,
			Word:  strings.TrimSpace(segment.Text),
		})
	}
	return words
}
