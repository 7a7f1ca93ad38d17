package models

import "time"

// Doctor is the slice of the hospital directory the scheduling core needs.
// Directory CRUD lives elsewhere; scheduling only reads it.
type Doctor struct {
	ID             string    `bson:"id" json:"id"`
	FullName       string    `bson:"fullName" json:"fullName"`
	Specialization string    `bson:"specialization" json:"specialization"`
	HospitalID     string    `bson:"hospitalId,omitempty" json:"hospitalId,omitempty"`
	DepartmentID   string    `bson:"departmentId,omitempty" json:"departmentId,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// DoctorStats summarizes a doctor's appointment load for the dashboard.
type DoctorStats struct {
	DoctorID  string `json:"doctorId"`
	Today     int    `json:"today"`
	Scheduled int    `json:"scheduled"`
	Completed int    `json:"completed"`
	Cancelled int    `json:"cancelled"`
}
