package scheduling

import (
	"context"

	appointmentRepo "shastho/database/repository/appointment"
	"shastho/models"
)

// Overlaps reports whether two half-open intervals [startA, endA) and
// [startB, endB) intersect. Adjacent intervals sharing a boundary do not
// overlap. Symmetric in its two intervals.
func Overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}

// ConflictChecker answers whether a time window collides with any
// non-cancelled appointment for a doctor on a date. Slot generation uses it
// to mark occupied windows; the booking coordinator re-runs it at commit
// time. Stateless beyond the store handle.
type ConflictChecker struct {
	Appointments appointmentRepo.AppointmentRepository
}

// HasConflict is true iff at least one appointment for doctorID on date with
// status other than cancelled overlaps [start, end).
func (c *ConflictChecker) HasConflict(ctx context.Context, doctorID, date string, start, end int) (bool, error) {
	appts, err := c.Appointments.GetByDoctorAndDate(ctx, doctorID, date)
	if err != nil {
		return false, serviceErr("fetch appointments for conflict check", err)
	}
	return overlapsAny(appts, start, end), nil
}

func overlapsAny(appts []models.Appointment, start, end int) bool {
	for _, appt := range appts {
		if appt.Status == models.AppointmentCancelled {
			continue
		}
		if Overlaps(start, end, appt.Start, appt.End) {
			return true
		}
	}
	return false
}
