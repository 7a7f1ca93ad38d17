package routes

import (
	"net/http"

	"shastho/handlers"
	"shastho/utils"

	"github.com/gin-gonic/gin"
)

// RegisterSchedulingRoutes registers all endpoints for the scheduling core.
func RegisterSchedulingRoutes(r *gin.Engine, h *handlers.SchedulingHandler) {
	api := r.Group("/api/scheduling")
	{
		doctors := api.Group("/doctors/:doctorID")
		{
			doctors.GET("/slots", h.GetBookableSlotsHandler)
			doctors.GET("/availability", h.GetAvailabilityHandler)
			doctors.PUT("/availability", h.SubmitAvailabilityHandler)
			doctors.GET("/appointments/upcoming", h.UpcomingAppointmentsHandler)
			doctors.GET("/stats", h.DoctorStatsHandler)
		}

		appointments := api.Group("/appointments")
		{
			appointments.POST("", h.BookAppointmentHandler)
			appointments.POST("/:appointmentID/cancel", h.CancelAppointmentHandler)
			appointments.POST("/:appointmentID/complete", h.CompleteAppointmentHandler)
			appointments.POST("/:appointmentID/no-show", h.NoShowAppointmentHandler)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}
