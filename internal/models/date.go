package models

import "time"

// DateOf truncates t to its calendar day in UTC. Date fields are stored
// and compared at this granularity.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
