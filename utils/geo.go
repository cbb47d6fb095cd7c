package utils

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Coordinate represents a geographic coordinate with latitude and longitude
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point converts the coordinate to an orb point (lng, lat order).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// ValidateCoordinate validates a geotag captured during inspection.
func ValidateCoordinate(lat, lng float64) error {
	// Latitude must be between -90 and 90
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %.6f is out of valid range [-90, 90]", lat)
	}

	// Longitude must be between -180 and 180
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %.6f is out of valid range [-180, 180]", lng)
	}

	return nil
}

// DistanceKm returns the great-circle distance between two geotags in kilometres.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	a := Coordinate{Lat: lat1, Lng: lng1}
	b := Coordinate{Lat: lat2, Lng: lng2}
	return geo.Distance(a.Point(), b.Point()) / 1000.0
}

// CenterOf calculates the centroid of a set of warehouse geotags.
func CenterOf(coordinates []Coordinate) Coordinate {
	if len(coordinates) == 0 {
		return Coordinate{}
	}

	var sumLat, sumLng float64
	for _, coord := range coordinates {
		sumLat += coord.Lat
		sumLng += coord.Lng
	}

	return Coordinate{
		Lat: sumLat / float64(len(coordinates)),
		Lng: sumLng / float64(len(coordinates)),
	}
}
