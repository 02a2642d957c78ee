// Package segment reduces one day's horizon-crossing events to a single
// sunrise and a single sunset minute-of-day. This is where all the edge-case
// policy lives: polar days with no events, days with only one crossing, and
// the rare three-event over-capture from windowed searching.
package segment

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/grey/greyline/internal/ephemeris"
)

// ErrMalformedEvents is returned when an event set cannot be reconciled to
// exactly one sunrise and one sunset. The day is rejected outright rather
// than miscounted, since a silently dropped or doubled value would
// desynchronize the series.
var ErrMalformedEvents = errors.New("cannot reconcile event set to one sunrise and one sunset")

// Missing returns the sentinel for a day with no event on one side.
// NaN is used so plotting treats the slot as a line gap.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether m is the missing sentinel.
func IsMissing(m float64) bool {
	return math.IsNaN(m)
}

// DayMarks is the segmentation result for one day at one location. Sunrise
// and Sunset are minutes-of-day in [0, 1440) or the missing sentinel.
// Repaired is set when the three-event repair ran, so callers can count and
// audit repairs instead of inferring them.
type DayMarks struct {
	Sunrise  float64
	Sunset   float64
	Repaired bool
}

// Options control how event instants become minutes-of-day.
type Options struct {
	Zone          *time.Location // fixed zone for minute-of-day; nil means UTC
	RoundToMinute bool           // round to the nearest minute instead of keeping seconds
}

// MinuteOfDay converts t to fractional minutes since midnight in the
// configured zone. 13:30:45 converts to 810.75.
func MinuteOfDay(t time.Time, opts Options) float64 {
	if opts.RoundToMinute {
		t = t.Add(30 * time.Second).Truncate(time.Minute)
	}

	zone := opts.Zone
	if zone == nil {
		zone = time.UTC
	}
	lt := t.In(zone)

	return float64(lt.Hour()*60+lt.Minute()) + float64(lt.Second())/60.0
}

// SegmentDay classifies one day's events and returns its marks.
//
//   - 0 events: both sides missing (continuous day or night).
//   - 1 event: its side is set, the other is missing.
//   - 2 events, one rising and one setting: both sides set.
//   - 3 events: the search window captured a neighbouring day's crossing as a
//     trailing extra; the last event is discarded from its own side and the
//     result is flagged Repaired.
//
// Anything else, including a two-event set with the same flag twice or a
// three-event repair that still leaves a side empty or doubled, is
// ErrMalformedEvents.
func SegmentDay(events []ephemeris.Event, opts Options) (DayMarks, error) {
	marks := DayMarks{Sunrise: Missing(), Sunset: Missing()}

	if len(events) > 3 {
		return marks, fmt.Errorf("%w: %d events", ErrMalformedEvents, len(events))
	}

	var rises, sets []float64
	for _, ev := range events {
		m := MinuteOfDay(ev.At, opts)
		if ev.Rising {
			rises = append(rises, m)
		} else {
			sets = append(sets, m)
		}
	}

	if len(events) == 3 {
		last := events[2]
		if last.Rising {
			rises = rises[:len(rises)-1]
		} else {
			sets = sets[:len(sets)-1]
		}
		marks.Repaired = true
	}

	if len(rises) > 1 || len(sets) > 1 || (marks.Repaired && (len(rises) == 0 || len(sets) == 0)) {
		return DayMarks{Sunrise: Missing(), Sunset: Missing()},
			fmt.Errorf("%w: %d sunrises, %d sunsets", ErrMalformedEvents, len(rises), len(sets))
	}

	if len(rises) == 1 {
		marks.Sunrise = rises[0]
	}
	if len(sets) == 1 {
		marks.Sunset = sets[0]
	}

	return marks, nil
}
