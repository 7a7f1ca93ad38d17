// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"

	"shastho/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AppointmentRepository is the persistence surface for committed bookings.
// Conflict checks and slot generation read by doctor+date; status changes go
// through the conditional UpdateStatus so a transition only lands when the
// stored row is still in the expected state.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	GetByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
	GetByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error)
	GetByPatientID(ctx context.Context, patientID string) ([]models.Appointment, error)
	GetUpcomingByDoctor(ctx context.Context, doctorID, fromDate string, limit int64) ([]models.Appointment, error)
	// UpdateStatus moves id from one status to another; ErrNotFound means the
	// row is missing or no longer in the from status.
	UpdateStatus(ctx context.Context, id string, from, to models.AppointmentStatus) error
	CountByDoctorAndStatus(ctx context.Context, doctorID string, status models.AppointmentStatus) (int64, error)
	CountByDoctorAndDate(ctx context.Context, doctorID, date string) (int64, error)
	// MarkNoShowBefore flips every Scheduled appointment dated strictly before
	// the given date to NoShow, returning how many rows changed.
	MarkNoShowBefore(ctx context.Context, date string) (int64, error)
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a MongoDB-backed AppointmentRepository.
func NewMongoAppointmentRepo(db *mongo.Database) AppointmentRepository {
	r := &mongoAppointmentRepo{coll: db.Collection("appointments")}
	if err := r.EnsureIndexes(); err != nil {
		zap.L().Warn("Failed to ensure appointment indexes", zap.Error(err))
	}
	return r
}
