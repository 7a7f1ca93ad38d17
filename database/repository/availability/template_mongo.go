// File: database/repository/availability/template_mongo.go
package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shastho/database/repository"
	"shastho/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoTemplateRepo) Create(ctx context.Context, t *models.AvailabilityTemplate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("insert availability template: %w", err)
	}
	return nil
}

func (r *mongoTemplateRepo) Update(ctx context.Context, t *models.AvailabilityTemplate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	t.UpdatedAt = time.Now()
	filter := bson.M{"id": t.ID, "doctorId": t.DoctorID}
	update := bson.M{"$set": bson.M{
		"dayOfWeek":           t.DayOfWeek,
		"start":               t.Start,
		"end":                 t.End,
		"slotDurationMinutes": t.SlotDurationMinutes,
		"isAvailable":         t.IsAvailable,
		"validFrom":           t.ValidFrom,
		"validUntil":          t.ValidUntil,
		"updatedAt":           t.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update availability template %s: %w", t.ID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoTemplateRepo) DeleteByID(ctx context.Context, doctorID, templateID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": templateID, "doctorId": doctorID})
	if err != nil {
		return fmt.Errorf("delete availability template %s: %w", templateID, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoTemplateRepo) GetByID(ctx context.Context, templateID string) (*models.AvailabilityTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var t models.AvailabilityTemplate
	err := r.coll.FindOne(ctx, bson.M{"id": templateID}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get availability template %s: %w", templateID, err)
	}
	return &t, nil
}

func (r *mongoTemplateRepo) GetByDoctorID(ctx context.Context, doctorID string) ([]models.AvailabilityTemplate, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID})
}

func (r *mongoTemplateRepo) GetByDoctorAndDay(ctx context.Context, doctorID string, dayOfWeek int) ([]models.AvailabilityTemplate, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID, "dayOfWeek": dayOfWeek})
}

func (r *mongoTemplateRepo) find(ctx context.Context, filter bson.M) ([]models.AvailabilityTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find availability templates: %w", err)
	}
	defer cursor.Close(ctx)

	var templates []models.AvailabilityTemplate
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("decode availability templates: %w", err)
	}
	return templates, nil
}
