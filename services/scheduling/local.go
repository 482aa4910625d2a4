package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	doctorRepo "voicedesk/database/repository/doctor"
)

// LocalAvailability answers doctor-availability questions from the clinic's
// own stored weekly schedules, without consulting the scheduling backend.
// It backs the menu's check-availability action.
type LocalAvailability struct {
	Doctors doctorRepo.DoctorScheduleRepository
	Now     func() time.Time
}

func NewLocalAvailability(doctors doctorRepo.DoctorScheduleRepository) *LocalAvailability {
	return &LocalAvailability{Doctors: doctors, Now: time.Now}
}

// IsDoctorAvailable reports whether the doctor's weekly schedule covers the
// requested time in the given department.
func (l *LocalAvailability) IsDoctorAvailable(ctx context.Context, doctor, timeText, department string) (bool, error) {
	name := NormalizeDoctor(doctor)
	schedule, err := l.Doctors.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			return false, fmt.Errorf("%w: %s", ErrUnknownDoctor, name)
		}
		return false, err
	}

	department = strings.ToLower(strings.TrimSpace(department))
	if department != "" && department != "general" && schedule.Department != department {
		return false, nil
	}

	at, err := ParseTimeText(timeText, l.Now())
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnparseableTime, err)
	}

	day := strings.ToLower(at.Weekday().String())
	minutes := at.Hour()*60 + at.Minute()

	for _, w := range schedule.Windows {
		if w.Day != day {
			continue
		}
		start, err := clockMinutes(w.Start)
		if err != nil {
			continue
		}
		end, err := clockMinutes(w.End)
		if err != nil {
			continue
		}
		if minutes >= start && minutes <= end {
			return true, nil
		}
	}
	return false, nil
}

// Describe summarizes a doctor's weekly windows for a spoken response.
func (l *LocalAvailability) Describe(ctx context.Context, doctor string) (string, error) {
	name := NormalizeDoctor(doctor)
	schedule, err := l.Doctors.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, doctorRepo.ErrDoctorNotFound) {
			return "", fmt.Errorf("%w: %s", ErrUnknownDoctor, name)
		}
		return "", err
	}

	if len(schedule.Windows) == 0 {
		return "has no availability on record", nil
	}
	parts := make([]string, 0, len(schedule.Windows))
	for _, w := range schedule.Windows {
		parts = append(parts, fmt.Sprintf("%s from %s to %s", w.Day, w.Start, w.End))
	}
	return "is available " + strings.Join(parts, ", "), nil
}

func clockMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
