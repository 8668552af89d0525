package model

import (
	"strings"
	"time"
)

type AttendanceAction string

const (
	ActionLogin  AttendanceAction = "login"
	ActionLogout AttendanceAction = "logout"
)

// Reviewed allowlist. New actions must be added here explicitly.
var attendanceActions = map[AttendanceAction]struct{}{
	ActionLogin:  {},
	ActionLogout: {},
}

// ParseAttendanceAction normalizes s and reports whether it is an allowed action.
func ParseAttendanceAction(s string) (AttendanceAction, bool) {
	action := AttendanceAction(strings.ToLower(strings.TrimSpace(s)))
	_, ok := attendanceActions[action]
	return action, ok
}

// AttendanceEvent is an append-only ledger entry. Rows are never updated.
type AttendanceEvent struct {
	ID             uint             `json:"id" gorm:"primarykey"`
	WorkerID       uint             `json:"-" gorm:"not null;index:idx_attendance_worker_time,priority:1"`
	Timestamp      time.Time        `json:"timestamp" gorm:"not null;index:idx_attendance_worker_time,priority:2;index"`
	Latitude       float64          `json:"latitude"`
	Longitude      float64          `json:"longitude"`
	Action         AttendanceAction `json:"action" gorm:"size:10;not null"`
	ImageRef       string           `json:"image_ref" gorm:"size:500"`
	Similarity     float64          `json:"similarity"`
	DistanceMeters float64          `json:"distance_meters"`
	CreatedAt      time.Time        `json:"-"`

	Worker *Worker `json:"worker,omitempty" gorm:"foreignKey:WorkerID;references:ID;constraint:OnDelete:CASCADE"`
}
