package model

import "time"

// LocationRecord is the current-state projection of a worker's location. At
// most one row per worker has ActivelySharing set; the unique ActiveKey
// column holds the worker's ID for that row and NULL for every other row.
type LocationRecord struct {
	ID                 uint      `json:"id" gorm:"primarykey"`
	WorkerID           uint      `json:"-" gorm:"not null;index:idx_location_worker_time,priority:1"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	DistanceFromOffice float64   `json:"distance_from_office"` // meters
	WithinGeofence     bool      `json:"is_in_office_radius"`
	ActivelySharing    bool      `json:"is_sharing"`
	ActiveKey          *uint     `json:"-" gorm:"uniqueIndex"`
	Timestamp          time.Time `json:"timestamp" gorm:"not null;index:idx_location_worker_time,priority:2"`
	CreatedAt          time.Time `json:"-"`
	UpdatedAt          time.Time `json:"-"`

	Worker *Worker `json:"worker,omitempty" gorm:"foreignKey:WorkerID;references:ID;constraint:OnDelete:CASCADE"`
}

// LocationPing is the append-only history of every ping received.
type LocationPing struct {
	ID                 uint      `json:"id" gorm:"primarykey"`
	WorkerID           uint      `json:"-" gorm:"not null;index"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	DistanceFromOffice float64   `json:"distance_from_office"`
	WithinGeofence     bool      `json:"is_in_office_radius"`
	SharingEnabled     bool      `json:"is_sharing"`
	Timestamp          time.Time `json:"timestamp" gorm:"not null;index"`

	Worker *Worker `json:"-" gorm:"foreignKey:WorkerID;references:ID;constraint:OnDelete:CASCADE"`
}

type LocationAlert struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	WorkerID   uint      `json:"-" gorm:"not null;index"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	DistanceKm float64   `json:"distance"` // kilometers from office
	OfficeName string    `json:"office_name" gorm:"size:100"`
	Timestamp  time.Time `json:"timestamp" gorm:"not null;index"`

	Worker *Worker `json:"worker,omitempty" gorm:"foreignKey:WorkerID;references:ID;constraint:OnDelete:CASCADE"`
}
