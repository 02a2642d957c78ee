// Package fill decides which shading shape represents night for a location's
// sunrise/sunset series on the chart.
package fill

import (
	"github.com/grey/greyline/internal/segment"
)

// Polarity says how daytime lies relative to midnight for a series.
type Polarity int

const (
	// Normal: sunrise precedes sunset, so night is the two bands around the
	// edges of the day.
	Normal Polarity = iota
	// Inverted: sunset precedes sunrise in the fixed zone, so night is the
	// single band between them.
	Inverted
)

func (p Polarity) String() string {
	if p == Inverted {
		return "inverted"
	}
	return "normal"
}

// Band is a vertical region between two boundary curves, one value per day.
// Days where either bound is missing are not drawable.
type Band struct {
	Lower []float64
	Upper []float64
}

// Regions is the shading decision for one location's series.
type Regions struct {
	Polarity Polarity
	Bands    []Band
}

// Resolve picks the polarity for the whole series from the first day whose
// sunrise and sunset are both present, skipping leading polar days. Deciding
// once for the run is a documented simplification; a per-day algorithm can be
// substituted here without touching the rest of the pipeline.
func Resolve(sunrise, sunset []float64) Regions {
	i := 0
	for i < len(sunrise) && (segment.IsMissing(sunrise[i]) || segment.IsMissing(sunset[i])) {
		i++
	}

	if i < len(sunrise) && sunrise[i] > sunset[i] {
		return Regions{
			Polarity: Inverted,
			Bands: []Band{
				{Lower: sunset, Upper: sunrise},
			},
		}
	}

	return Regions{
		Polarity: Normal,
		Bands: []Band{
			{Lower: sunset, Upper: flat(1440, len(sunset))},
			{Lower: flat(0, len(sunrise)), Upper: sunrise},
		},
	}
}

func flat(v float64, n int) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = v
	}
	return vals
}
