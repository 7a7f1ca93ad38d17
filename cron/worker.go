package cron

import (
	"context"
	"time"

	"shastho/config"
	"shastho/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// NoShowMarker is the slice of the appointment store the sweep needs.
type NoShowMarker interface {
	MarkNoShowBefore(ctx context.Context, date string) (int64, error)
}

// StartStatusSweep schedules the nightly sweep that flips Scheduled
// appointments whose date has passed to NoShow. Forward-only like every other
// status change; cancelled and completed rows are untouched.
func StartStatusSweep(appointments NoShowMarker) *cron.Cron {
	logger := utils.GetLogger()

	c := cron.New()
	_, err := c.AddFunc(config.AppConfig.SweepSchedule, func() {
		sweepOnce(appointments, logger)
	})
	if err != nil {
		logger.Fatal("Invalid sweep schedule", zap.String("schedule", config.AppConfig.SweepSchedule), zap.Error(err))
	}

	c.Start()
	return c
}

func sweepOnce(appointments NoShowMarker, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	today := utils.FormatDate(utils.Today())
	n, err := appointments.MarkNoShowBefore(ctx, today)
	if err != nil {
		logger.Error("Appointment status sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info("Appointment status sweep finished",
			zap.Int64("markedNoShow", n),
			zap.String("before", today),
		)
	}
}
