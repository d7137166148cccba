package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampAnchor(t *testing.T) {
	assert.Equal(t, 10.0, TimestampAnchor(10, 20, AnchorStart))
	assert.Equal(t, 15.0, TimestampAnchor(10, 20, AnchorMid))
	assert.Equal(t, 20.0, TimestampAnchor(10, 20, AnchorEnd))
	assert.Equal(t, 10.0, TimestampAnchor(10, 20, Anchor("bogus")))
}

func TestAssignSpeakers(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 1000, Text: "first"},
		{Start: 1500, End: 2500, Text: "second"},
		{Start: 9000, End: 9500, Speaker: 5, Text: "orphan"},
	}
	turns := []SpeakerTurn{
		{Start: 0, End: 1200, Speaker: 1},
		{Start: 1200, End: 3000, Speaker: 2},
	}

	out := AssignSpeakers(segments, turns, AnchorStart)
	require.Len(t, out, 3)
	assert.Equal(t, 1, out[0].Speaker)
	assert.Equal(t, 2, out[1].Speaker)
	assert.Equal(t, 0, out[2].Speaker, "segment outside every turn defaults to speaker 0")

	assert.Equal(t, 5, segments[2].Speaker, "input slice must not be mutated")
}

func TestAssignSpeakersMidAnchor(t *testing.T) {
	// Anchor at 2000 lands in the second turn even though the segment
	// starts inside the first.
	segments := []Segment{{Start: 1000, End: 3000, Text: "straddles"}}
	turns := []SpeakerTurn{
		{Start: 0, End: 1500, Speaker: 1},
		{Start: 1500, End: 4000, Speaker: 2},
	}

	out := AssignSpeakers(segments, turns, AnchorMid)
	assert.Equal(t, 2, out[0].Speaker)
}

func TestAssignSpeakersNoTurns(t *testing.T) {
	segments := []Segment{{Start: 0, End: 1, Speaker: 7, Text: "x"}}
	out := AssignSpeakers(segments, nil, AnchorStart)
	assert.Equal(t, 7, out[0].Speaker)
}
