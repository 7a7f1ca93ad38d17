// File: database/repository/doctor/doctor_mongo.go
package doctorRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shastho/database/repository"
	"shastho/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DoctorRepository is the read-only slice of the hospital directory the
// scheduling core consumes. Directory CRUD is owned elsewhere.
type DoctorRepository interface {
	GetByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	Exists(ctx context.Context, doctorID string) (bool, error)
}

type mongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo constructs a MongoDB-backed DoctorRepository.
func NewMongoDoctorRepo(db *mongo.Database) DoctorRepository {
	return &mongoDoctorRepo{coll: db.Collection("doctors")}
}

func (r *mongoDoctorRepo) GetByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc models.Doctor
	err := r.coll.FindOne(ctx, bson.M{"id": doctorID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get doctor %s: %w", doctorID, err)
	}
	return &doc, nil
}

func (r *mongoDoctorRepo) Exists(ctx context.Context, doctorID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"id": doctorID})
	if err != nil {
		return false, fmt.Errorf("check doctor %s exists: %w", doctorID, err)
	}
	return n > 0, nil
}
