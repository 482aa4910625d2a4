package models

import (
	"fmt"
	"strings"
	"time"
)

// WeeklyWindow is one recurring availability window in a doctor's week.
type WeeklyWindow struct {
	Day   string `bson:"day" json:"day"`     // lowercase weekday, e.g. "monday"
	Start string `bson:"start" json:"start"` // 24h clock, "10:00"
	End   string `bson:"end" json:"end"`     // 24h clock, "14:00"
}

var weekdays = map[string]bool{
	"sunday": true, "monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true, "saturday": true,
}

// Validate checks the window's weekday and clock values.
func (w WeeklyWindow) Validate() error {
	if !weekdays[strings.ToLower(w.Day)] {
		return fmt.Errorf("invalid weekday %q", w.Day)
	}
	start, err := time.Parse("15:04", w.Start)
	if err != nil {
		return fmt.Errorf("invalid start time %q", w.Start)
	}
	end, err := time.Parse("15:04", w.End)
	if err != nil {
		return fmt.Errorf("invalid end time %q", w.End)
	}
	if !end.After(start) {
		return fmt.Errorf("window end %q is not after start %q", w.End, w.Start)
	}
	return nil
}

// DoctorSchedule describes a bookable doctor: the department they belong to,
// the scheduling backend's event type used to create appointments for them,
// and their recurring weekly availability.
type DoctorSchedule struct {
	ID          string         `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string         `bson:"name" json:"name"` // normalized, e.g. "dr._patel"
	Department  string         `bson:"department" json:"department"`
	EventTypeID string         `bson:"eventTypeId" json:"eventTypeId"`
	Windows     []WeeklyWindow `bson:"windows" json:"windows"`
}
