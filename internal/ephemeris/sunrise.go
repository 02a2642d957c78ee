package ephemeris

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/grey/greyline/internal/geodesy"
)

// SunriseSource computes horizon crossings with the go-sunrise implementation
// of the NOAA solar calculator. It is the default backend.
//
// go-sunrise answers per UTC calendar day and returns zero times for days
// with no crossing (continuous day or night at polar latitudes).
type SunriseSource struct{}

func (SunriseSource) Events(loc geodesy.Location, start, end time.Time) ([]Event, error) {
	if err := checkInterval(start, end); err != nil {
		return nil, err
	}

	var events []Event
	for _, day := range searchDays(start, end) {
		rise, set := sunrise.SunriseSunset(loc.Lat, loc.Lon, day.Year(), day.Month(), day.Day())
		if !rise.IsZero() && inWindow(rise, start, end) {
			events = append(events, Event{At: rise, Rising: true})
		}
		if !set.IsZero() && inWindow(set, start, end) {
			events = append(events, Event{At: set, Rising: false})
		}
	}

	sortEvents(events)
	return events, nil
}
