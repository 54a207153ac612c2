package services

import (
	"github.com/jftuga/geodist"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
)

// EarthRadiusKm is the mean Earth radius distances are reported against.
const EarthRadiusKm = 6371.0

// geodistRadiusKm is the fixed radius geodist.HaversineDistance uses.
const geodistRadiusKm = 6378.1

// DistanceKm returns the haversine great-circle distance between two points
// in kilometres, using a mean Earth radius of 6371 km.
func DistanceKm(from, to entities.Coordinates) float64 {
	_, km := geodist.HaversineDistance(
		geodist.Coord{Lat: from.Latitude, Lon: from.Longitude},
		geodist.Coord{Lat: to.Latitude, Lon: to.Longitude},
	)
	return km * EarthRadiusKm / geodistRadiusKm
}
