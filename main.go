// File: shastho/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shastho/config"
	sweeper "shastho/cron"
	"shastho/database"
	appointmentRepo "shastho/database/repository/appointment"
	availabilityRepo "shastho/database/repository/availability"
	doctorRepo "shastho/database/repository/doctor"
	"shastho/handlers"
	"shastho/middleware"
	"shastho/routes"
	"shastho/services/scheduling"
	"shastho/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	mongoClient := database.Connect()
	defer database.Disconnect(mongoClient)
	db := mongoClient.Database(config.AppConfig.DatabaseName)

	utils.InitLockClient()
	lockClient := utils.GetLockClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	doctors := doctorRepo.NewMongoDoctorRepo(db)
	templates := availabilityRepo.NewMongoTemplateRepo(db)
	appointments := appointmentRepo.NewMongoAppointmentRepo(db)

	// services.
	conflicts := &scheduling.ConflictChecker{Appointments: appointments}
	slotService := &scheduling.DefaultSlotService{
		Doctors:      doctors,
		Templates:    templates,
		Appointments: appointments,
	}
	availabilityService := &scheduling.DefaultAvailabilityService{
		Doctors:   doctors,
		Templates: templates,
	}
	bookingService := &scheduling.DefaultBookingService{
		Doctors:      doctors,
		Appointments: appointments,
		Conflicts:    conflicts,
		Locks:        scheduling.NewRedisLocker(lockClient, time.Duration(config.AppConfig.BookingLockTTL)*time.Second),
		Logger:       logger,
	}
	dashboardService := &scheduling.DefaultDashboardService{
		Doctors:      doctors,
		Appointments: appointments,
	}

	schedulingHandler := handlers.NewSchedulingHandler(slotService, availabilityService, bookingService, dashboardService)
	routes.RegisterSchedulingRoutes(router, schedulingHandler)

	utils.StartHealthMonitor(lockClient, mongoClient)

	sweep := sweeper.StartStatusSweep(appointments)
	defer sweep.Stop()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
