package ephemeris

import (
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/grey/greyline/internal/geodesy"
)

// SunCalcSource computes horizon crossings with the suncalc port of the
// Agafonkin solar position algorithms. Alternative backend; useful for
// cross-checking the default against an independent implementation.
type SunCalcSource struct{}

func (SunCalcSource) Events(loc geodesy.Location, start, end time.Time) ([]Event, error) {
	if err := checkInterval(start, end); err != nil {
		return nil, err
	}

	var events []Event
	for _, day := range searchDays(start, end) {
		// suncalc anchors its day at the given instant; noon keeps the
		// returned times on the intended UTC date.
		noon := day.Add(12 * time.Hour)
		times := suncalc.GetTimes(noon, loc.Lat, loc.Lon)

		if t, ok := times[suncalc.Sunrise]; ok && !t.Value.IsZero() && inWindow(t.Value, start, end) {
			events = append(events, Event{At: t.Value, Rising: true})
		}
		if t, ok := times[suncalc.Sunset]; ok && !t.Value.IsZero() && inWindow(t.Value, start, end) {
			events = append(events, Event{At: t.Value, Rising: false})
		}
	}

	sortEvents(events)
	return events, nil
}
