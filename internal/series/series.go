// Package series accumulates per-day segmentation results into aligned
// sunrise/sunset sequences for one location over a date range.
package series

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grey/greyline/internal/ephemeris"
	"github.com/grey/greyline/internal/geodesy"
	"github.com/grey/greyline/internal/metrics"
	"github.com/grey/greyline/internal/segment"
)

// DaySeries holds the aligned per-day sunrise and sunset minutes for one
// location. Index i corresponds to Dates[i]; every day contributes exactly
// one slot to each sequence, with the missing sentinel where no event
// existed, so the three slices are always the same length.
type DaySeries struct {
	Location geodesy.Location
	Dates    []time.Time
	Sunrise  []float64
	Sunset   []float64
	Repairs  int // days where the three-event repair ran
}

// Build walks dates strictly in order and segments the 24 h window starting
// at each one. The dates must be midnights in the run's fixed zone; the
// window for a date is [date, date+1d). Any source or segmentation error
// aborts the build with the location and date attached.
func Build(ctx context.Context, src ephemeris.Source, loc geodesy.Location, dates []time.Time, opts segment.Options) (DaySeries, error) {
	ds := DaySeries{
		Location: loc,
		Dates:    dates,
		Sunrise:  make([]float64, 0, len(dates)),
		Sunset:   make([]float64, 0, len(dates)),
	}

	for _, date := range dates {
		select {
		case <-ctx.Done():
			return ds, ctx.Err()
		default:
		}

		events, err := src.Events(loc, date, date.AddDate(0, 0, 1))
		if err != nil {
			return ds, fmt.Errorf("%s %s: %w", loc.Name, date.Format("2006-01-02"), err)
		}
		metrics.RecordEphemerisQuery()

		marks, err := segment.SegmentDay(events, opts)
		if err != nil {
			if errors.Is(err, segment.ErrMalformedEvents) {
				metrics.RecordMalformedDay()
			}
			return ds, fmt.Errorf("%s %s: %w", loc.Name, date.Format("2006-01-02"), err)
		}
		if marks.Repaired {
			ds.Repairs++
			metrics.RecordRepair()
		}

		ds.Sunrise = append(ds.Sunrise, marks.Sunrise)
		ds.Sunset = append(ds.Sunset, marks.Sunset)
	}

	return ds, nil
}
