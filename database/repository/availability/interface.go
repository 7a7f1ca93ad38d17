// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"

	"shastho/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// TemplateRepository is the persistence surface for recurring availability
// templates. Slot generation reads by doctor+day; reconciliation reads the
// whole set for a doctor and applies per-record mutations.
type TemplateRepository interface {
	Create(ctx context.Context, t *models.AvailabilityTemplate) error
	Update(ctx context.Context, t *models.AvailabilityTemplate) error
	DeleteByID(ctx context.Context, doctorID, templateID string) error
	GetByID(ctx context.Context, templateID string) (*models.AvailabilityTemplate, error)
	GetByDoctorID(ctx context.Context, doctorID string) ([]models.AvailabilityTemplate, error)
	GetByDoctorAndDay(ctx context.Context, doctorID string, dayOfWeek int) ([]models.AvailabilityTemplate, error)
}

type mongoTemplateRepo struct {
	coll *mongo.Collection
}

// NewMongoTemplateRepo constructs a MongoDB-backed TemplateRepository.
func NewMongoTemplateRepo(db *mongo.Database) TemplateRepository {
	r := &mongoTemplateRepo{coll: db.Collection("availability_templates")}
	if err := r.EnsureIndexes(); err != nil {
		zap.L().Warn("Failed to ensure availability template indexes", zap.Error(err))
	}
	return r
}
