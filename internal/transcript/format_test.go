package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPunctuation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello ... world !", "Hello world!"},
		{"So , what do you think ?", "So, what do you think?"},
		{"One   two\tthree", "One two three"},
		{"Trailing ...", "Trailing"},
		{"... Leading", "Leading"},
		{"Stop . Now ; please :", "Stop. Now; please:"},
		{"already clean", "already clean"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanPunctuation(tt.in), "input %q", tt.in)
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty("...   "))
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty(" . . . "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("Hi."))
	assert.False(t, IsEmpty("a"))
}

func TestFormatWords(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 1, Text: " hi "},
		{Start: 1, End: 2.5, Text: "there"},
	}

	words := FormatWords(segments)
	require.Len(t, words, 2)
	assert.Equal(t, Word{Start: 0, End: 1, Word: "hi"}, words[0])
	assert.Equal(t, Word{Start: 1, End: 2.5, Word: "there"}, words[1])
}

func TestFormatWordsEmptyInput(t *testing.T) {
	assert.Empty(t, FormatWords(nil))
}
