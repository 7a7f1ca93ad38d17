package scheduling

import (
	"context"
	"testing"

	"shastho/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		startA, endA, startB, endB     int
		want                           bool
	}{
		{"identical windows", 600, 630, 600, 630, true},
		{"partial overlap", 600, 660, 630, 690, true},
		{"containment", 600, 720, 630, 660, true},
		{"adjacent windows do not overlap", 600, 630, 630, 660, false},
		{"adjacent reversed", 630, 660, 600, 630, false},
		{"disjoint", 540, 600, 660, 720, false},
		{"one minute overlap", 600, 631, 630, 660, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.startA, tt.endA, tt.startB, tt.endB))
			// Symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.startB, tt.endB, tt.startA, tt.endA))
		})
	}
}

func TestHasConflictIgnoresCancelled(t *testing.T) {
	appts := newFakeAppointmentRepo()
	require.NoError(t, appts.Create(context.Background(), &models.Appointment{
		DoctorID: "doc-1", PatientID: "pat-1", Date: "2029-01-01",
		Start: 600, End: 630, Status: models.AppointmentCancelled,
	}))
	require.NoError(t, appts.Create(context.Background(), &models.Appointment{
		DoctorID: "doc-1", PatientID: "pat-2", Date: "2029-01-01",
		Start: 660, End: 690, Status: models.AppointmentScheduled,
	}))

	checker := &ConflictChecker{Appointments: appts}

	conflict, err := checker.HasConflict(context.Background(), "doc-1", "2029-01-01", 600, 630)
	require.NoError(t, err)
	assert.False(t, conflict, "cancelled appointment should not block the window")

	conflict, err = checker.HasConflict(context.Background(), "doc-1", "2029-01-01", 660, 690)
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestHasConflictCompletedStillBlocks(t *testing.T) {
	appts := newFakeAppointmentRepo()
	require.NoError(t, appts.Create(context.Background(), &models.Appointment{
		DoctorID: "doc-1", PatientID: "pat-1", Date: "2029-01-01",
		Start: 600, End: 630, Status: models.AppointmentCompleted,
	}))

	checker := &ConflictChecker{Appointments: appts}
	conflict, err := checker.HasConflict(context.Background(), "doc-1", "2029-01-01", 615, 645)
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestHasConflictOtherDateAndDoctor(t *testing.T) {
	appts := newFakeAppointmentRepo()
	require.NoError(t, appts.Create(context.Background(), &models.Appointment{
		DoctorID: "doc-1", PatientID: "pat-1", Date: "2029-01-01",
		Start: 600, End: 630, Status: models.AppointmentScheduled,
	}))

	checker := &ConflictChecker{Appointments: appts}

	conflict, err := checker.HasConflict(context.Background(), "doc-1", "2029-01-02", 600, 630)
	require.NoError(t, err)
	assert.False(t, conflict)

	conflict, err = checker.HasConflict(context.Background(), "doc-2", "2029-01-01", 600, 630)
	require.NoError(t, err)
	assert.False(t, conflict)
}
