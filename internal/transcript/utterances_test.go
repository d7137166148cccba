package transcript

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUtterancesDropsEmptySegments(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 1000, Speaker: 0, Text: "Hello ... World!"},
		{Start: 1000, End: 2000, Speaker: 0, Text: "  "},
	}

	utterances, err := BuildUtterances(segments, UnitSeconds)
	require.NoError(t, err)
	require.Len(t, utterances, 1)

	raw, err := json.Marshal(utterances[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"speaker":0,"start":0,"end":1,"text":"Hello World!"}`, string(raw))
}

func TestBuildUtterancesRejectsUnknownUnit(t *testing.T) {
	_, err := BuildUtterances(nil, Unit("minutes"))
	var unitErr *InvalidTimestampUnitError
	require.ErrorAs(t, err, &unitErr)
}

func TestBuildUtterancesOrdersStartBeforeEnd(t *testing.T) {
	segments := []Segment{{Start: 2000, End: 1000, Speaker: 1, Text: "backwards"}}

	utterances, err := BuildUtterances(segments, UnitMilliseconds)
	require.NoError(t, err)
	require.Len(t, utterances, 1)
	assert.Equal(t, 1000.0, utterances[0].Start.Milliseconds())
	assert.Equal(t, 2000.0, utterances[0].End.Milliseconds())
}

func TestBuildUtterancesHMS(t *testing.T) {
	segments := []Segment{{Start: 0, End: 3723456, Speaker: 2, Text: "long one"}}

	utterances, err := BuildUtterances(segments, UnitHMS)
	require.NoError(t, err)

	raw, err := json.Marshal(utterances)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"speaker":2,"start":"00:00:00.000","end":"01:02:03.456","text":"long one"}]`, string(raw))
}
