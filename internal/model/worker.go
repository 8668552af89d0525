package model

import "gorm.io/gorm"

type Worker struct {
	gorm.Model
	ExternalID   string    `json:"worker_id" gorm:"column:external_id;size:100;uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	OfficeID     uint      `json:"office_id" gorm:"not null;index"`
	FaceImageURL string    `json:"face_image_url"`
	FaceEncoding []float64 `json:"-" gorm:"serializer:json;type:text"` // 128-D descriptor

	// Relations
	Office *Office `json:"office,omitempty" gorm:"foreignKey:OfficeID;references:ID;constraint:OnDelete:RESTRICT"`
}
