// Package presence infers whether a worker is online from the age of their
// most recent location and attendance records. It holds no state.
package presence

import (
	"time"

	"presence-backend/internal/model"
)

type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
)

const (
	// LocationFreshness is how long an actively shared location keeps a
	// worker online.
	LocationFreshness = 10 * time.Minute

	// AttendanceStaleAfter is the age past which the last attendance event
	// forces a worker offline.
	AttendanceStaleAfter = 24 * time.Hour
)

// IsOnline applies the rules in order; the first that fires decides:
//
//  1. active location no older than LocationFreshness: online
//  2. attendance older than AttendanceStaleAfter: offline
//  3. active location older than LocationFreshness: offline
//  4. otherwise: offline
//
// A login within the last day with no shared location is therefore offline.
func IsOnline(latestLocation *model.LocationRecord, latestAttendance *model.AttendanceEvent, now time.Time) bool {
	if latestLocation != nil && latestLocation.ActivelySharing &&
		now.Sub(latestLocation.Timestamp) <= LocationFreshness {
		return true
	}

	if latestAttendance != nil && now.Sub(latestAttendance.Timestamp) > AttendanceStaleAfter {
		return false
	}

	if latestLocation != nil && latestLocation.ActivelySharing &&
		now.Sub(latestLocation.Timestamp) > LocationFreshness {
		return false
	}

	return false
}

func Infer(latestLocation *model.LocationRecord, latestAttendance *model.AttendanceEvent, now time.Time) Status {
	if IsOnline(latestLocation, latestAttendance, now) {
		return StatusOnline
	}
	return StatusOffline
}

// LastSignal returns the newer of the two record timestamps, or the zero time
// when neither exists.
func LastSignal(latestLocation *model.LocationRecord, latestAttendance *model.AttendanceEvent) time.Time {
	var last time.Time
	if latestLocation != nil {
		last = latestLocation.Timestamp
	}
	if latestAttendance != nil && latestAttendance.Timestamp.After(last) {
		last = latestAttendance.Timestamp
	}
	return last
}
