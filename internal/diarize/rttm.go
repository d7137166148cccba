package diarize

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/Shubh587/wordcab-transcribe/internal/transcript"
)

// ParseRTTM reads speaker turns from an RTTM file as written by
// diarization backends. Lines other than SPEAKER records are skipped.
// Speaker labels of the form "speaker_N" map to speaker N; any other
// label is numbered in order of first appearance.
func ParseRTTM(r io.Reader) ([]transcript.SpeakerTurn, error) {
	var turns []transcript.SpeakerTurn
	labels := make(map[string]int)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if fields[0] != "SPEAKER" {
			continue
		}
		if len(fields) < 8 {
			return nil, fmt.Errorf("malformed RTTM record on line %d: %q", lineNo, line)
		}

		onset, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed RTTM onset on line %d: %w", lineNo, err)
		}
		duration, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed RTTM duration on line %d: %w", lineNo, err)
		}

		turns = append(turns, transcript.SpeakerTurn{
			Start:   onset * 1000,
			End:     (onset + duration) * 1000,
			Speaker: speakerIndex(fields[7], labels),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read RTTM: %w", err)
	}

	sort.SliceStable(turns, func(i, j int) bool { return turns[i].Start < turns[j].Start })
	return turns, nil
}

func speakerIndex(label string, seen map[string]int) int {
	if n, err := strconv.Atoi(strings.TrimPrefix(label, "speaker_")); err == nil && n >= 0 {
		return n
	}
	if n, ok := seen[label]; ok {
		return n
	}
	n := len(seen)
	seen[label] = n
	return n
}
