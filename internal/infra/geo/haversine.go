package geo

import (
	"math"

	"github.com/yanqian/venuecast/internal/domain/venue"
)

const earthRadiusKm = 6371.0

// Haversine is the default DistanceCalculator: great-circle distance
// between two coordinates.
type Haversine struct{}

// NewHaversine constructs the calculator.
func NewHaversine() *Haversine {
	return &Haversine{}
}

func (h *Haversine) DistanceKm(from, to venue.LatLng) float64 {
	lat1 := from.Lat * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	dLat := (to.Lat - from.Lat) * math.Pi / 180
	dLng := (to.Lng - from.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
