package scheduling

import (
	"context"
	"errors"
	"fmt"

	"shastho/database/repository"
	appointmentRepo "shastho/database/repository/appointment"
	doctorRepo "shastho/database/repository/doctor"
	"shastho/models"
	"shastho/utils"

	"go.uber.org/zap"
)

// BookingService commits and cancels appointments. The conflict check runs
// again at commit time under the doctor+date lock; a previously fetched slot
// list is never trusted.
type BookingService interface {
	// Book returns the created appointment, ErrSlotUnavailable on a
	// commit-time conflict, ErrNotFound for an unknown doctor, or a
	// ValidationError for a malformed request.
	Book(ctx context.Context, doctorID, patientID, date string, start, end int) (*models.Appointment, error)
	// Cancel moves a Scheduled appointment to Cancelled. Rejected for
	// terminal statuses and past dates. The actor must be the appointment's
	// patient or doctor.
	Cancel(ctx context.Context, appointmentID, actorID string) error
	// Complete and MarkNoShow are the doctor-side terminal transitions.
	Complete(ctx context.Context, appointmentID string) error
	MarkNoShow(ctx context.Context, appointmentID string) error
}

// DefaultBookingService is the concrete implementation.
type DefaultBookingService struct {
	Doctors      doctorRepo.DoctorRepository
	Appointments appointmentRepo.AppointmentRepository
	Conflicts    *ConflictChecker
	Locks        DoctorDayLocker
	Logger       *zap.Logger
}

func (s *DefaultBookingService) Book(ctx context.Context, doctorID, patientID, date string, start, end int) (*models.Appointment, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, newValidationError(err.Error())
	}
	if patientID == "" {
		return nil, newValidationError("patientId is required")
	}
	if start < 0 || end > 24*60 {
		return nil, newValidationError(fmt.Sprintf("time window [%d, %d) outside the day", start, end))
	}
	if start >= end {
		return nil, newValidationError(fmt.Sprintf("start %s must be before end %s", utils.FormatClock(start), utils.FormatClock(end)))
	}
	if day.Before(utils.Today()) {
		return nil, newValidationError("cannot book an appointment in the past")
	}

	exists, err := s.Doctors.Exists(ctx, doctorID)
	if err != nil {
		return nil, serviceErr("check doctor exists", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	// The lock makes check-then-insert atomic per doctor+date; without it two
	// concurrent bookings for overlapping windows could both pass the check.
	release, err := s.Locks.Acquire(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	defer release()

	conflict, err := s.Conflicts.HasConflict(ctx, doctorID, date, start, end)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrSlotUnavailable
	}

	appt := &models.Appointment{
		DoctorID:  doctorID,
		PatientID: patientID,
		Date:      date,
		Start:     start,
		End:       end,
		Status:    models.AppointmentScheduled,
	}
	if err := s.Appointments.Create(ctx, appt); err != nil {
		return nil, serviceErr("create appointment", err)
	}

	s.logger().Info("appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("doctorId", doctorID),
		zap.String("date", date),
		zap.String("window", utils.FormatClock(start)+"-"+utils.FormatClock(end)),
	)
	return appt, nil
}

func (s *DefaultBookingService) Cancel(ctx context.Context, appointmentID, actorID string) error {
	appt, err := s.getOwned(ctx, appointmentID, actorID)
	if err != nil {
		return err
	}

	day, err := utils.ParseDate(appt.Date)
	if err != nil {
		return serviceErr("parse stored appointment date", err)
	}
	if day.Before(utils.Today()) {
		return fmt.Errorf("%w: appointment date %s is in the past", ErrInvalidTransition, appt.Date)
	}

	return s.transition(ctx, appt, models.AppointmentCancelled)
}

func (s *DefaultBookingService) Complete(ctx context.Context, appointmentID string) error {
	appt, err := s.get(ctx, appointmentID)
	if err != nil {
		return err
	}
	return s.transition(ctx, appt, models.AppointmentCompleted)
}

func (s *DefaultBookingService) MarkNoShow(ctx context.Context, appointmentID string) error {
	appt, err := s.get(ctx, appointmentID)
	if err != nil {
		return err
	}
	return s.transition(ctx, appt, models.AppointmentNoShow)
}

func (s *DefaultBookingService) get(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, serviceErr("fetch appointment", err)
	}
	return appt, nil
}

// getOwned hides appointments the actor has no claim on behind ErrNotFound.
func (s *DefaultBookingService) getOwned(ctx context.Context, appointmentID, actorID string) (*models.Appointment, error) {
	appt, err := s.get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if actorID != appt.PatientID && actorID != appt.DoctorID {
		return nil, ErrNotFound
	}
	return appt, nil
}

func (s *DefaultBookingService) transition(ctx context.Context, appt *models.Appointment, next models.AppointmentStatus) error {
	if !appt.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, next)
	}
	// Conditional on the current status so a concurrent transition loses
	// cleanly instead of overwriting.
	err := s.Appointments.UpdateStatus(ctx, appt.ID, appt.Status, next)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: appointment %s changed concurrently", ErrInvalidTransition, appt.ID)
	}
	if err != nil {
		return serviceErr("update appointment status", err)
	}

	s.logger().Info("appointment status changed",
		zap.String("appointmentId", appt.ID),
		zap.String("from", string(appt.Status)),
		zap.String("to", string(next)),
	)
	return nil
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}
