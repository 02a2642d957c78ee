package geodesy

import (
	"errors"
	"fmt"
	"math"
)

// ErrAntipodal is returned when a midpoint is requested for two points that
// are antipodal (or close enough that the midpoint is numerically undefined).
var ErrAntipodal = errors.New("midpoint undefined for antipodal coordinates")

// Location is a fixed site on the spherical Earth.
type Location struct {
	Name       string
	Lat        float64 // degrees, north positive
	Lon        float64 // degrees, east positive
	ElevationM float64 // meters above sea level
}

const degToRad = math.Pi / 180.0

// antipodalEps is the margin (radians of central angle) inside which two
// points are treated as antipodal. asin loses about 1e-8 of precision near
// its endpoint, so the margin is well above that.
const antipodalEps = 1e-6

// Midpoint returns the great-circle midpoint between a and b.
// Spherical trigonometry only, no datum correction; the formula is the
// intermediate point at fraction 0.5 from Williams' "Aviation Formulary".
func Midpoint(a, b Location) (Location, error) {
	lat1 := a.Lat * degToRad
	lat2 := b.Lat * degToRad
	dLon := (b.Lon - a.Lon) * degToRad

	if math.Pi-CentralAngle(a, b) < antipodalEps {
		return Location{}, fmt.Errorf("%w: (%.4f, %.4f) and (%.4f, %.4f)",
			ErrAntipodal, a.Lat, a.Lon, b.Lat, b.Lon)
	}

	bx := math.Cos(lat2) * math.Cos(dLon)
	by := math.Cos(lat2) * math.Sin(dLon)

	latM := math.Atan2(
		math.Sin(lat1)+math.Sin(lat2),
		math.Sqrt((math.Cos(lat1)+bx)*(math.Cos(lat1)+bx)+by*by),
	)
	lonM := a.Lon*degToRad + math.Atan2(by, math.Cos(lat1)+bx)

	return Location{
		Name: "Midpoint",
		Lat:  latM / degToRad,
		Lon:  normalizeLon(lonM / degToRad),
	}, nil
}

// CentralAngle returns the great-circle angular distance between a and b in
// radians, computed with the haversine form for numerical stability at small
// separations.
func CentralAngle(a, b Location) float64 {
	lat1 := a.Lat * degToRad
	lat2 := b.Lat * degToRad
	dLat := (b.Lat - a.Lat) * degToRad
	dLon := (b.Lon - a.Lon) * degToRad

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * math.Asin(math.Min(1, math.Sqrt(h)))
}

// normalizeLon wraps a longitude in degrees to (-180, 180].
func normalizeLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon <= -180 {
		lon += 360
	}
	return lon
}
