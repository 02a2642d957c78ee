package ephemeris

import (
	"errors"
	"testing"
	"time"

	"github.com/grey/greyline/internal/geodesy"
)

var (
	auckland   = geodesy.Location{Name: "ZL1 Auckland", Lat: -36.85, Lon: 174.77}
	newYork    = geodesy.Location{Name: "W2 New York City, NY", Lat: 40.8, Lon: -74.0}
	highArctic = geodesy.Location{Name: "High Arctic", Lat: 80, Lon: 0}
)

func window(y int, m time.Month, d int) (time.Time, time.Time) {
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func TestNew(t *testing.T) {
	if _, err := New(BackendSunrise); err != nil {
		t.Errorf("sunrise backend: %v", err)
	}
	if _, err := New(BackendSunCalc); err != nil {
		t.Errorf("suncalc backend: %v", err)
	}
	if _, err := New("skyfield"); err == nil {
		t.Error("unknown backend should be rejected")
	}
}

func TestSunriseSourceMidSummerAuckland(t *testing.T) {
	// Auckland in January: in UTC the sunset comes before the sunrise,
	// both well inside the day.
	start, end := window(2020, time.January, 1)
	events, err := SunriseSource{}.Events(auckland, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Rising {
		t.Error("first UTC event at Auckland in January should be a sunset")
	}
	if !events[1].Rising {
		t.Error("second UTC event at Auckland in January should be a sunrise")
	}
	for i, ev := range events {
		if ev.At.Before(start) || !ev.At.Before(end) {
			t.Errorf("event %d at %v outside window [%v, %v)", i, ev.At, start, end)
		}
	}
	if !events[0].At.Before(events[1].At) {
		t.Error("events must be time-ordered")
	}
}

func TestSunriseSourcePolarNight(t *testing.T) {
	start, end := window(2020, time.January, 1)
	events, err := SunriseSource{}.Events(highArctic, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("polar night should yield no events, got %d", len(events))
	}
}

func TestSunriseSourceEmptyInterval(t *testing.T) {
	start, _ := window(2020, time.January, 1)
	if _, err := (SunriseSource{}).Events(auckland, start, start); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
	if _, err := (SunriseSource{}).Events(auckland, start, start.Add(-time.Hour)); !errors.Is(err, ErrUnavailable) {
		t.Errorf("reversed interval err = %v, want ErrUnavailable", err)
	}
}

func TestSunCalcSourceNewYorkJune(t *testing.T) {
	// New York in June, UTC window: the previous local evening's sunset
	// lands just after midnight UTC, then the morning sunrise.
	start, end := window(2020, time.June, 1)
	events, err := SunCalcSource{}.Events(newYork, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Rising || !events[1].Rising {
		t.Errorf("want sunset then sunrise, got rising=%v,%v", events[0].Rising, events[1].Rising)
	}
	if !events[0].At.Before(events[1].At) {
		t.Error("events must be time-ordered")
	}
}

func TestBackendsAgree(t *testing.T) {
	// The two implementations should land within a couple of minutes of
	// each other for an ordinary mid-latitude day.
	start, end := window(2020, time.March, 15)

	a, err := SunriseSource{}.Events(newYork, start, end)
	if err != nil {
		t.Fatalf("sunrise backend: %v", err)
	}
	b, err := SunCalcSource{}.Events(newYork, start, end)
	if err != nil {
		t.Fatalf("suncalc backend: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("event counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Rising != b[i].Rising {
			t.Errorf("event %d flags differ", i)
		}
		if diff := a[i].At.Sub(b[i].At); diff < -2*time.Minute || diff > 2*time.Minute {
			t.Errorf("event %d times differ by %v", i, diff)
		}
	}
}
