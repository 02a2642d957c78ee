package chart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grey/greyline/internal/fill"
	"github.com/grey/greyline/internal/geodesy"
	"github.com/grey/greyline/internal/segment"
	"github.com/grey/greyline/internal/series"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"W2 New York City, NY", "W2_New_York_City_NY"},
		{"3Y/B Bouvet", "3YB_Bouvet"},
		{"OJ0 Market Reef", "OJ0_Market_Reef"},
		{"St. Peter and St. Paul Rocks", "St_Peter_and_St_Paul_Rocks"},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRuns(t *testing.T) {
	miss := segment.Missing()

	got := runs([]float64{miss, 1, 2, miss, miss, 3, 4, 5})
	want := []run{{1, 3}, {5, 8}}
	if len(got) != len(want) {
		t.Fatalf("runs = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("run %d = %v, want %v", i, got[i], want[i])
		}
	}

	if got := runs([]float64{miss, miss}); len(got) != 0 {
		t.Errorf("all-missing runs = %v, want none", got)
	}
	if got := runs(nil); len(got) != 0 {
		t.Errorf("empty runs = %v, want none", got)
	}
}

func TestHourTicks(t *testing.T) {
	ticks := hourTicks()

	var labelled int
	for _, tk := range ticks {
		if tk.Label != "" {
			labelled++
		}
	}
	if labelled != 25 {
		t.Errorf("labelled ticks = %d, want 25 (00:00 through 24:00)", labelled)
	}
	if ticks[0].Label != "00:00" {
		t.Errorf("first tick = %q, want 00:00", ticks[0].Label)
	}
	if last := ticks[len(ticks)-1]; last.Label != "24:00" || last.Value != 1440 {
		t.Errorf("last tick = %q at %v, want 24:00 at 1440", last.Label, last.Value)
	}
}

func testSeries(loc geodesy.Location, dates []time.Time, rise, set []float64) series.DaySeries {
	return series.DaySeries{Location: loc, Dates: dates, Sunrise: rise, Sunset: set}
}

func TestRenderWritesChart(t *testing.T) {
	dir := t.TempDir()
	r := &Renderer{Dir: dir, Format: "png", WidthIn: 6, HeightIn: 4}

	dates := []time.Time{
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	tx := testSeries(geodesy.Location{Name: "ZL1 Auckland"}, dates,
		[]float64{1024, 1026}, []float64{460, 462})
	rx := testSeries(geodesy.Location{Name: "W2 New York City, NY"}, dates,
		[]float64{440, 441}, []float64{990, 991})
	mp := testSeries(geodesy.Location{Name: "Midpoint"}, dates,
		[]float64{700, 701}, []float64{100, 101})

	path, err := r.Render(Input{
		Year:        2020,
		Transmitter: tx,
		Receiver:    rx,
		Midpoint:    mp,
		TxFill:      fill.Resolve(tx.Sunrise, tx.Sunset),
		RxFill:      fill.Resolve(rx.Sunrise, rx.Sunset),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := filepath.Join(dir, "2020_ZL1 Auckland_W2_New_York_City_NY.png")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestRenderWithGaps(t *testing.T) {
	dir := t.TempDir()
	r := &Renderer{Dir: dir, Format: "svg", WidthIn: 6, HeightIn: 4}

	miss := segment.Missing()
	dates := []time.Time{
		time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 6, 3, 0, 0, 0, 0, time.UTC),
	}
	// Polar transmitter: a day of continuous daylight in the middle.
	tx := testSeries(geodesy.Location{Name: "TX"}, dates,
		[]float64{100, miss, 104}, []float64{1400, miss, 1396})
	rx := testSeries(geodesy.Location{Name: "RX"}, dates,
		[]float64{300, 301, 302}, []float64{1100, 1099, 1098})
	mp := testSeries(geodesy.Location{Name: "Midpoint"}, dates,
		[]float64{200, miss, 202}, []float64{1200, miss, 1198})

	if _, err := r.Render(Input{
		Year:        2020,
		Transmitter: tx,
		Receiver:    rx,
		Midpoint:    mp,
		TxFill:      fill.Resolve(tx.Sunrise, tx.Sunset),
		RxFill:      fill.Resolve(rx.Sunrise, rx.Sunset),
	}); err != nil {
		t.Fatalf("render with gaps: %v", err)
	}
}
