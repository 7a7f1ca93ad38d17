package models

// BookableSlot is one concrete, date-bound window a patient can book. Slots
// are recomputed from templates and appointments on every query and are never
// persisted.
type BookableSlot struct {
	DoctorID        string `json:"doctorId"`
	Date            string `json:"date"` // "YYYY-MM-DD"
	Start           int    `json:"start"`
	End             int    `json:"end"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// BookableSlotView is the wire form of a slot, with clock-face times.
type BookableSlotView struct {
	StartTime       string `json:"startTime"` // "HH:MM"
	EndTime         string `json:"endTime"`   // "HH:MM"
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// BookAppointmentRequest is the payload for a patient booking a slot.
type BookAppointmentRequest struct {
	DoctorID  string `json:"doctorId" binding:"required"`
	PatientID string `json:"patientId" binding:"required"`
	Date      string `json:"date" binding:"required"`      // "YYYY-MM-DD"
	StartTime string `json:"startTime" binding:"required"` // "HH:MM"
	EndTime   string `json:"endTime" binding:"required"`   // "HH:MM"
}
