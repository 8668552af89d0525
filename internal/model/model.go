package model

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&Office{},
		&Worker{},
		&AttendanceEvent{},
		&LocationRecord{},
		&LocationPing{},
		&LocationAlert{},
		&Admin{},
	}
}
