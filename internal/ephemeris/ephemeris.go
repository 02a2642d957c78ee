package ephemeris

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/grey/greyline/internal/geodesy"
)

// ErrUnavailable is returned when the backend cannot resolve the requested
// interval. Callers treat it as fatal for the current unit of work; there is
// no retry, since missing astronomical data is not transient.
var ErrUnavailable = errors.New("ephemeris unavailable for requested interval")

// Event marks the instant the sun's center crosses the local horizon.
// Rising distinguishes sunrise (true) from sunset (false).
type Event struct {
	At     time.Time
	Rising bool
}

// Source yields horizon-crossing events for a location inside a half-open
// interval [start, end). Implementations must return events in time order and
// must not drop in-window events. A 24 h window may over-capture up to three
// events, because crossings near the window edges belong to adjacent search
// days.
type Source interface {
	Events(loc geodesy.Location, start, end time.Time) ([]Event, error)
}

// Backends selectable in the run configuration.
const (
	BackendSunrise = "sunrise"
	BackendSunCalc = "suncalc"
)

// New returns the Source for the named backend.
func New(backend string) (Source, error) {
	switch backend {
	case BackendSunrise:
		return SunriseSource{}, nil
	case BackendSunCalc:
		return SunCalcSource{}, nil
	default:
		return nil, fmt.Errorf("unknown ephemeris backend %q", backend)
	}
}

// checkInterval validates a query window before any backend work.
func checkInterval(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("%w: empty interval [%s, %s)",
			ErrUnavailable, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}

// searchDays returns the UTC calendar days whose events could fall inside
// [start, end): every day the window touches plus one day on each side.
func searchDays(start, end time.Time) []time.Time {
	s := start.UTC()
	first := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	var days []time.Time
	for d := first; d.Before(end.UTC().AddDate(0, 0, 1)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// inWindow reports whether t falls inside the half-open interval [start, end).
func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func sortEvents(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].At.Before(events[j].At)
	})
}
