package transcript

// Anchor selects which point of a segment is compared against
// diarization turns when attributing a speaker.
type Anchor string

const (
	AnchorStart Anchor = "start"
	AnchorMid   Anchor = "mid"
	AnchorEnd   Anchor = "end"
)

// TimestampAnchor returns the anchor point of a segment spanning
// [start, end]. Unrecognized anchors fall back to the segment start.
func TimestampAnchor(start, end float64, anchor Anchor) float64 {
	switch anchor {
	case AnchorEnd:
		return end
	case AnchorMid:
		return (start + end) / 2
	default:
		return start
	}
}

// AssignSpeakers labels each segment with the speaker whose diarization
// turn contains the segment's anchor point. Segments falling outside
// every turn get speaker 0. With no turns at all the segments are
// returned unchanged; the input slice is never mutated.
func AssignSpeakers(segments []Segment, turns []SpeakerTurn, anchor Anchor) []Segment {
	if len(turns) == 0 {
		return segments
	}

	out := make([]Segment, len(segments))
	copy(out, segments)
	for i := range out {
		point := TimestampAnchor(out[i].Start, out[i].End, anchor)
		out[i].Speaker = 0
		for _, turn := range turns {
			if point >= turn.Start && point <= turn.End {
				out[i].Speaker = turn.Speaker
				break
			}
		}
	}
	return out
}
