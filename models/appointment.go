package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no-show"
)

// Appointment is a committed booking of one doctor for one patient. Start and
// End are minutes from midnight on Date; the range is half-open [Start, End).
// For a given doctor and date, no two appointments whose status is not
// cancelled may overlap.
type Appointment struct {
	ID        string            `bson:"id" json:"id"`
	DoctorID  string            `bson:"doctorId" json:"doctorId"`
	PatientID string            `bson:"patientId" json:"patientId"`
	Date      string            `bson:"date" json:"date"` // "YYYY-MM-DD"
	Start     int               `bson:"start" json:"start"`
	End       int               `bson:"end" json:"end"`
	Status    AppointmentStatus `bson:"status" json:"status"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Terminal reports whether the status admits no further transitions.
// Scheduled is the only non-terminal state.
func (s AppointmentStatus) Terminal() bool {
	return s != AppointmentScheduled
}

// CanTransitionTo enforces the forward-only state machine: Scheduled may move
// to Completed, Cancelled, or NoShow; nothing ever re-opens.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s != AppointmentScheduled {
		return false
	}
	switch next {
	case AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}
