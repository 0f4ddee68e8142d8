package kernel

import (
	"fmt"
	"math"

	"relay/internal/pkg/errs"
	"relay/internal/pkg/guard"
)

const (
	// LongitudeMin is the smallest valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the largest valid longitude in degrees.
	LongitudeMax = 180.0
	// LatitudeMin is the smallest valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the largest valid latitude in degrees.
	LatitudeMax = 90.0

	// EarthRadiusKm is the mean earth radius used for great circle distances.
	EarthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when validating a zero GeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeoPoint")

// GeoPoint is a WGS84 coordinate given as longitude and latitude in degrees.
//
// Example:
//
//	berlin, _ := kernel.NewGeoPoint(13.404954, 52.520008)
//	hamburg, _ := kernel.NewGeoPoint(9.993682, 53.551086)
//	berlin.DistanceKm(hamburg) // ~255
type GeoPoint struct {
	lon   float64
	lat   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint validates the coordinate ranges and returns the point.
func NewGeoPoint(lon, lat float64) (GeoPoint, error) {
	if math.IsNaN(lon) || lon < LongitudeMin || lon > LongitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", lon, LongitudeMin, LongitudeMax)
	}
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}

	return GeoPoint{lon: lon, lat: lat, guard: guard.NewConstructorGuard()}, nil
}

// MustNewGeoPoint is like NewGeoPoint but panics on out of range input.
func MustNewGeoPoint(lon, lat float64) GeoPoint {
	p, err := NewGeoPoint(lon, lat)
	if err != nil {
		panic(err)
	}
	return p
}

func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Lon() float64 {
	return p.lon
}

func (p GeoPoint) Lat() float64 {
	return p.lat
}

// DistanceKm returns the haversine great circle distance in kilometres.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	lat1 := degreesToRadians(p.lat)
	lat2 := degreesToRadians(other.lat)
	dLat := lat2 - lat1
	dLon := degreesToRadians(other.lon - p.lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// IsWithin reports whether other lies no further than radiusKm from p.
func (p GeoPoint) IsWithin(other GeoPoint, radiusKm float64) bool {
	return p.DistanceKm(other) <= radiusKm
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("POINT(%g %g)", p.lon, p.lat)
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
