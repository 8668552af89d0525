package model

import (
	"presence-backend/internal/geo"

	"gorm.io/gorm"
)

const DefaultRadiusMeters = 100

// Office is a workplace with a circular geofence. Workers reference it by
// OfficeID; the office never holds a list of its workers.
type Office struct {
	gorm.Model
	Name         string  `json:"name" gorm:"size:100;not null"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters" gorm:"default:100"`
}

func (o Office) Center() geo.Point {
	return geo.Point{Latitude: o.Latitude, Longitude: o.Longitude}
}
