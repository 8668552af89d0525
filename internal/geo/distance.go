package geo

import "math"

// Mean earth radius in meters.
const EarthRadiusMeters = 6371000

type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceMeters returns the great-circle distance between a and b using the
// Haversine formula. Out-of-range coordinates are not validated.
func DistanceMeters(a, b Point) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	lat1Rad := toRadians(a.Latitude)
	lat2Rad := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// Destination returns the point reached by travelling meters from p along the
// given bearing (degrees clockwise from north) on the same sphere used by
// DistanceMeters.
func Destination(p Point, bearingDeg, meters float64) Point {
	angular := meters / EarthRadiusMeters
	bearing := toRadians(bearingDeg)
	lat1 := toRadians(p.Latitude)
	lon1 := toRadians(p.Longitude)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angular) +
		math.Cos(lat1)*math.Sin(angular)*math.Cos(bearing))
	lon2 := lon1 + math.Atan2(
		math.Sin(bearing)*math.Sin(angular)*math.Cos(lat1),
		math.Cos(angular)-math.Sin(lat1)*math.Sin(lat2),
	)

	return Point{Latitude: toDegrees(lat2), Longitude: toDegrees(lon2)}
}

func toRadians(deg float64) float64 { return deg * (math.Pi / 180.0) }

func toDegrees(rad float64) float64 { return rad * (180.0 / math.Pi) }
