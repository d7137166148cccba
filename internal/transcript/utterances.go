package transcript

// BuildUtterances turns raw engine segments into caller-facing
// utterances: silence-artifact segments are dropped, text is cleaned,
// and offsets are bound to the requested unit. Order is preserved and
// start never exceeds end in the output.
func BuildUtterances(segments []Segment, unit Unit) ([]Utterance, error) {
	if _, err := ParseUnit(string(unit)); err != nil {
		return nil, err
	}

	utterances := make([]Utterance, 0, len(segments))
	for _, segment := range segments {
		if IsEmpty(segment.Text) {
			continue
		}

		start, end := segment.Start, segment.End
		if end < start {
			start, end = end, start
		}

		utterances = append(utterances, Utterance{
			Speaker: segment.Speaker,
			Start:   Timestamp{ms: start, unit: unit},
			End:     Timestamp{ms: end, unit: unit},
			Text:    CleanPunctuation(segment.Text),
		})
	}
	return utterances, nil
}
