package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shastho/models"
	"shastho/services/scheduling"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stub services returning canned results, for exercising the HTTP layer and
// the error-to-status mapping in isolation.

type stubSlots struct {
	slots []models.BookableSlot
	err   error
}

func (s *stubSlots) GenerateSlots(context.Context, string, string) ([]models.BookableSlot, error) {
	return s.slots, s.err
}

type stubAvailability struct {
	templates []models.AvailabilityTemplate
	report    *models.ReconciliationReport
	err       error
}

func (s *stubAvailability) ListTemplates(context.Context, string) ([]models.AvailabilityTemplate, error) {
	return s.templates, s.err
}

func (s *stubAvailability) Reconcile(context.Context, string, []models.TemplateDescriptor) (*models.ReconciliationReport, error) {
	return s.report, s.err
}

type stubBooking struct {
	appt *models.Appointment
	err  error
}

func (s *stubBooking) Book(context.Context, string, string, string, int, int) (*models.Appointment, error) {
	return s.appt, s.err
}
func (s *stubBooking) Cancel(context.Context, string, string) error { return s.err }
func (s *stubBooking) Complete(context.Context, string) error       { return s.err }
func (s *stubBooking) MarkNoShow(context.Context, string) error     { return s.err }

type stubDashboard struct {
	stats *models.DoctorStats
	appts []models.Appointment
	err   error
}

func (s *stubDashboard) Stats(context.Context, string) (*models.DoctorStats, error) {
	return s.stats, s.err
}

func (s *stubDashboard) Upcoming(context.Context, string, int64) ([]models.Appointment, error) {
	return s.appts, s.err
}

func newTestRouter(h *SchedulingHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/doctors/:doctorID/slots", h.GetBookableSlotsHandler)
	r.PUT("/doctors/:doctorID/availability", h.SubmitAvailabilityHandler)
	r.POST("/appointments", h.BookAppointmentHandler)
	r.POST("/appointments/:appointmentID/cancel", h.CancelAppointmentHandler)
	return r
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetBookableSlots(t *testing.T) {
	h := NewSchedulingHandler(&stubSlots{slots: []models.BookableSlot{
		{DoctorID: "doc-1", Date: "2029-01-01", Start: 540, End: 570, DurationMinutes: 30, Available: true},
		{DoctorID: "doc-1", Date: "2029-01-01", Start: 570, End: 600, DurationMinutes: 30, Available: false},
	}}, &stubAvailability{}, &stubBooking{}, &stubDashboard{})
	r := newTestRouter(h)

	w := perform(r, http.MethodGet, "/doctors/doc-1/slots?date=2029-01-01", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Slots []models.BookableSlotView `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime)
	assert.Equal(t, "09:30", resp.Slots[0].EndTime)
	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
}

func TestGetBookableSlotsRequiresDate(t *testing.T) {
	h := NewSchedulingHandler(&stubSlots{}, &stubAvailability{}, &stubBooking{}, &stubDashboard{})
	w := perform(newTestRouter(h), http.MethodGet, "/doctors/doc-1/slots", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &scheduling.ValidationError{Issues: []scheduling.ValidationIssue{{Index: -1, Reason: "bad date"}}}, http.StatusBadRequest},
		{"not found", scheduling.ErrNotFound, http.StatusNotFound},
		{"slot unavailable", scheduling.ErrSlotUnavailable, http.StatusConflict},
		{"invalid transition", scheduling.ErrInvalidTransition, http.StatusConflict},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSchedulingHandler(&stubSlots{}, &stubAvailability{}, &stubBooking{err: tt.err}, &stubDashboard{})
			body := `{"doctorId":"doc-1","patientId":"pat-1","date":"2029-01-01","startTime":"09:00","endTime":"09:30"}`
			w := perform(newTestRouter(h), http.MethodPost, "/appointments", body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestBookAppointment(t *testing.T) {
	h := NewSchedulingHandler(&stubSlots{}, &stubAvailability{}, &stubBooking{
		appt: &models.Appointment{ID: "appt-1", Status: models.AppointmentScheduled},
	}, &stubDashboard{})

	body := `{"doctorId":"doc-1","patientId":"pat-1","date":"2029-01-01","startTime":"09:00","endTime":"09:30"}`
	w := perform(newTestRouter(h), http.MethodPost, "/appointments", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "appt-1")
}

func TestBookAppointmentRejectsBadPayload(t *testing.T) {
	h := NewSchedulingHandler(&stubSlots{}, &stubAvailability{}, &stubBooking{}, &stubDashboard{})
	r := newTestRouter(h)

	// Missing required fields.
	w := perform(r, http.MethodPost, "/appointments", `{"doctorId":"doc-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed clock value.
	body := `{"doctorId":"doc-1","patientId":"pat-1","date":"2029-01-01","startTime":"9am","endTime":"09:30"}`
	w = perform(r, http.MethodPost, "/appointments", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitAvailabilityReportsPartialFailure(t *testing.T) {
	clean := &models.ReconciliationReport{DoctorID: "doc-1", Created: []string{"tpl-1"}}
	dirty := &models.ReconciliationReport{DoctorID: "doc-1", Failures: []models.ReconciliationFailure{
		{TemplateID: "tpl-2", Op: models.ReconcileUpdate, Reason: "write concern timeout"},
	}}
	body := `{"templates":[{"dayOfWeek":0,"startTime":"09:00","endTime":"12:00"}]}`

	h := NewSchedulingHandler(&stubSlots{}, &stubAvailability{report: clean}, &stubBooking{}, &stubDashboard{})
	w := perform(newTestRouter(h), http.MethodPut, "/doctors/doc-1/availability", body)
	assert.Equal(t, http.StatusOK, w.Code)

	h = NewSchedulingHandler(&stubSlots{}, &stubAvailability{report: dirty}, &stubBooking{}, &stubDashboard{})
	w = perform(newTestRouter(h), http.MethodPut, "/doctors/doc-1/availability", body)
	assert.Equal(t, http.StatusMultiStatus, w.Code)
}

func TestCancelRequiresActor(t *testing.T) {
	h := NewSchedulingHandler(&stubSlots{}, &stubAvailability{}, &stubBooking{}, &stubDashboard{})
	r := newTestRouter(h)

	w := perform(r, http.MethodPost, "/appointments/appt-1/cancel", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPost, "/appointments/appt-1/cancel", `{"actorId":"pat-1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}
