package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"shastho/models"
	"shastho/services/scheduling"
	"shastho/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SchedulingHandler exposes the scheduling core over HTTP.
type SchedulingHandler struct {
	Slots        scheduling.SlotService
	Availability scheduling.AvailabilityService
	Booking      scheduling.BookingService
	Dashboard    scheduling.DashboardService
}

// NewSchedulingHandler wires the handler to its services.
func NewSchedulingHandler(
	slots scheduling.SlotService,
	availability scheduling.AvailabilityService,
	booking scheduling.BookingService,
	dashboard scheduling.DashboardService,
) *SchedulingHandler {
	return &SchedulingHandler{
		Slots:        slots,
		Availability: availability,
		Booking:      booking,
		Dashboard:    dashboard,
	}
}

// GetBookableSlotsHandler returns the bookable slots for a doctor on a date.
func (h *SchedulingHandler) GetBookableSlotsHandler(c *gin.Context) {
	doctorID := c.Param("doctorID")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: date"})
		return
	}

	slots, err := h.Slots.GenerateSlots(c.Request.Context(), doctorID, date)
	if err != nil {
		h.renderError(c, err, "Failed to generate slots")
		return
	}

	views := make([]models.BookableSlotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, models.BookableSlotView{
			StartTime:       utils.FormatClock(slot.Start),
			EndTime:         utils.FormatClock(slot.End),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
		})
	}
	c.JSON(http.StatusOK, gin.H{"doctorId": doctorID, "date": date, "slots": views})
}

// GetAvailabilityHandler returns a doctor's stored weekly templates.
func (h *SchedulingHandler) GetAvailabilityHandler(c *gin.Context) {
	doctorID := c.Param("doctorID")

	templates, err := h.Availability.ListTemplates(c.Request.Context(), doctorID)
	if err != nil {
		h.renderError(c, err, "Failed to fetch availability")
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctorId": doctorID, "templates": templates})
}

// SubmitAvailabilityHandler reconciles a doctor's bulk-edited weekly schedule.
func (h *SchedulingHandler) SubmitAvailabilityHandler(c *gin.Context) {
	logger := utils.GetLogger()
	doctorID := c.Param("doctorID")

	var req models.SubmitAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid availability submission", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	report, err := h.Availability.Reconcile(c.Request.Context(), doctorID, req.Templates)
	if err != nil {
		h.renderError(c, err, "Failed to update availability")
		return
	}

	status := http.StatusOK
	if !report.Clean() {
		// Some records failed after validation; the caller decides whether to
		// retry them.
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{"report": report})
}

// BookAppointmentHandler commits a patient's booking request.
func (h *SchedulingHandler) BookAppointmentHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid booking request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	start, err := utils.ParseClock(req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startTime", "message": err.Error()})
		return
	}
	end, err := utils.ParseClock(req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endTime", "message": err.Error()})
		return
	}

	appt, err := h.Booking.Book(c.Request.Context(), req.DoctorID, req.PatientID, req.Date, start, end)
	if err != nil {
		h.renderError(c, err, "Failed to book appointment")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// CancelAppointmentHandler cancels a scheduled appointment.
func (h *SchedulingHandler) CancelAppointmentHandler(c *gin.Context) {
	appointmentID := c.Param("appointmentID")

	var body struct {
		ActorID string `json:"actorId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid actorId in request body"})
		return
	}

	if err := h.Booking.Cancel(c.Request.Context(), appointmentID, body.ActorID); err != nil {
		h.renderError(c, err, "Failed to cancel appointment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// CompleteAppointmentHandler marks an appointment completed.
func (h *SchedulingHandler) CompleteAppointmentHandler(c *gin.Context) {
	if err := h.Booking.Complete(c.Request.Context(), c.Param("appointmentID")); err != nil {
		h.renderError(c, err, "Failed to complete appointment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment completed"})
}

// NoShowAppointmentHandler marks an appointment as a no-show.
func (h *SchedulingHandler) NoShowAppointmentHandler(c *gin.Context) {
	if err := h.Booking.MarkNoShow(c.Request.Context(), c.Param("appointmentID")); err != nil {
		h.renderError(c, err, "Failed to mark appointment as no-show")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment marked as no-show"})
}

// UpcomingAppointmentsHandler returns a doctor's next appointments.
func (h *SchedulingHandler) UpcomingAppointmentsHandler(c *gin.Context) {
	doctorID := c.Param("doctorID")

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "5"), 10, 64)
	appts, err := h.Dashboard.Upcoming(c.Request.Context(), doctorID, limit)
	if err != nil {
		h.renderError(c, err, "Failed to fetch upcoming appointments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctorId": doctorID, "appointments": appts})
}

// DoctorStatsHandler returns appointment counts for a doctor's dashboard.
func (h *SchedulingHandler) DoctorStatsHandler(c *gin.Context) {
	stats, err := h.Dashboard.Stats(c.Request.Context(), c.Param("doctorID"))
	if err != nil {
		h.renderError(c, err, "Failed to fetch doctor stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// renderError maps the scheduling error taxonomy onto HTTP statuses.
func (h *SchedulingHandler) renderError(c *gin.Context, err error, message string) {
	var verr *scheduling.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "issues": verr.Issues})
	case errors.Is(err, scheduling.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, scheduling.ErrSlotUnavailable):
		// Recoverable: the client should refresh the slot list and retry.
		c.JSON(http.StatusConflict, gin.H{"error": "Slot no longer available", "retry": true})
	case errors.Is(err, scheduling.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid appointment status transition", "message": err.Error()})
	default:
		utils.GetLogger().Error(message, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, message, err.Error())
	}
}
