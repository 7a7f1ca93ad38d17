package scheduling

import (
	"context"

	appointmentRepo "shastho/database/repository/appointment"
	doctorRepo "shastho/database/repository/doctor"
	"shastho/models"
	"shastho/utils"
)

// DashboardService serves the doctor dashboard: appointment counts and the
// next few upcoming visits.
type DashboardService interface {
	Stats(ctx context.Context, doctorID string) (*models.DoctorStats, error)
	Upcoming(ctx context.Context, doctorID string, limit int64) ([]models.Appointment, error)
}

// DefaultDashboardService is the concrete implementation.
type DefaultDashboardService struct {
	Doctors      doctorRepo.DoctorRepository
	Appointments appointmentRepo.AppointmentRepository
}

func (s *DefaultDashboardService) Stats(ctx context.Context, doctorID string) (*models.DoctorStats, error) {
	exists, err := s.Doctors.Exists(ctx, doctorID)
	if err != nil {
		return nil, serviceErr("check doctor exists", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	stats := &models.DoctorStats{DoctorID: doctorID}
	today := utils.FormatDate(utils.Today())

	n, err := s.Appointments.CountByDoctorAndDate(ctx, doctorID, today)
	if err != nil {
		return nil, serviceErr("count today's appointments", err)
	}
	stats.Today = int(n)

	counts := []struct {
		status models.AppointmentStatus
		dest   *int
	}{
		{models.AppointmentScheduled, &stats.Scheduled},
		{models.AppointmentCompleted, &stats.Completed},
		{models.AppointmentCancelled, &stats.Cancelled},
	}
	for _, c := range counts {
		n, err := s.Appointments.CountByDoctorAndStatus(ctx, doctorID, c.status)
		if err != nil {
			return nil, serviceErr("count appointments by status", err)
		}
		*c.dest = int(n)
	}
	return stats, nil
}

func (s *DefaultDashboardService) Upcoming(ctx context.Context, doctorID string, limit int64) ([]models.Appointment, error) {
	exists, err := s.Doctors.Exists(ctx, doctorID)
	if err != nil {
		return nil, serviceErr("check doctor exists", err)
	}
	if !exists {
		return nil, ErrNotFound
	}
	if limit <= 0 {
		limit = 5
	}

	appts, err := s.Appointments.GetUpcomingByDoctor(ctx, doctorID, utils.FormatDate(utils.Today()), limit)
	if err != nil {
		return nil, serviceErr("fetch upcoming appointments", err)
	}
	return appts, nil
}
