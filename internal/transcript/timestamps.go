package transcript

import (
	"fmt"
	"strconv"
)

// Unit selects the presentation format for transcript offsets.
type Unit string

const (
	// UnitMilliseconds leaves offsets exactly as the engine produced
	// them. No conversion is applied.
	UnitMilliseconds Unit = "ms"
	// UnitSeconds divides millisecond offsets by 1000.
	UnitSeconds Unit = "s"
	// UnitHMS renders offsets as a fixed-width "HH:MM:SS.mmm" string.
	UnitHMS Unit = "hms"
)

// InvalidTimestampUnitError reports a timestamp unit outside the
// supported set.
type InvalidTimestampUnitError struct {
	Unit string
}

func (e *InvalidTimestampUnitError) Error() string {
	return fmt.Sprintf("invalid timestamp unit: %q (valid units are: ms, s, hms)", e.Unit)
}

// ParseUnit validates a unit string supplied by a caller.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitMilliseconds, UnitSeconds, UnitHMS:
		return Unit(s), nil
	default:
		return "", &InvalidTimestampUnitError{Unit: s}
	}
}

// Timestamp is a transcript offset bound to a presentation unit. It
// marshals to a JSON number for "ms" and "s" and to a quoted
// "HH:MM:SS.mmm" string for "hms".
type Timestamp struct {
	ms   float64
	unit Unit
}

// Convert expresses a millisecond offset in the requested unit. The
// offset itself is stored unmodified; conversion happens on rendering.
func Convert(ms float64, unit Unit) (Timestamp, error) {
	if _, err := ParseUnit(string(unit)); err != nil {
		return Timestamp{}, err
	}
	return Timestamp{ms: ms, unit: unit}, nil
}

// Milliseconds returns the raw engine offset.
func (t Timestamp) Milliseconds() float64 { return t.ms }

// Unit returns the presentation unit the timestamp renders as.
func (t Timestamp) Unit() Unit { return t.unit }

// String renders the timestamp in its unit.
func (t Timestamp) String() string {
	switch t.unit {
	case UnitSeconds:
		return strconv.FormatFloat(t.ms/1000, 'f', -1, 64)
	case UnitHMS:
		return formatHMS(t.ms)
	default:
		return strconv.FormatFloat(t.ms, 'f', -1, 64)
	}
}

// MarshalJSON renders the timestamp as a number ("ms", "s") or a quoted
// string ("hms").
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.unit == UnitHMS {
		return []byte(strconv.Quote(formatHMS(t.ms))), nil
	}
	return []byte(t.String()), nil
}

// formatHMS renders a millisecond offset as fixed-width HH:MM:SS.mmm.
// Sub-millisecond remainders are floored, and hours grow past two
// digits rather than wrapping at 24.
func formatHMS(ms float64) string {
	total := int64(ms)
	if total < 0 {
		total = 0
	}
	hours := total / 3600000
	minutes := (total % 3600000) / 60000
	seconds := (total % 60000) / 1000
	millis := total % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}
