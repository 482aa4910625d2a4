package doctorRepo

import (
	"context"
	"errors"
	"fmt"

	"voicedesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDoctorNotFound is returned when no schedule exists for a doctor name.
var ErrDoctorNotFound = errors.New("doctor schedule not found")

// Upsert inserts or replaces a doctor's schedule, keyed by normalized name.
func (r *mongoDoctorRepo) Upsert(ctx context.Context, schedule models.DoctorSchedule) (string, error) {
	if schedule.Name == "" {
		return "", fmt.Errorf("doctor schedule requires a name")
	}
	if schedule.ID == "" {
		schedule.ID = uuid.New().String()
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"name": schedule.Name}, schedule, opts)
	if err != nil {
		return "", fmt.Errorf("failed to upsert doctor schedule: %w", err)
	}
	return schedule.ID, nil
}

// GetByName returns the schedule stored under a normalized doctor name.
func (r *mongoDoctorRepo) GetByName(ctx context.Context, name string) (*models.DoctorSchedule, error) {
	var schedule models.DoctorSchedule
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&schedule)
	if err == mongo.ErrNoDocuments {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor schedule: %w", err)
	}
	return &schedule, nil
}

// List returns every stored doctor schedule.
func (r *mongoDoctorRepo) List(ctx context.Context) ([]models.DoctorSchedule, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor schedules: %w", err)
	}
	defer cursor.Close(ctx)

	var schedules []models.DoctorSchedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, fmt.Errorf("failed to decode doctor schedules: %w", err)
	}
	return schedules, nil
}

// DeleteByName removes a doctor's schedule.
func (r *mongoDoctorRepo) DeleteByName(ctx context.Context, name string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("failed to delete doctor schedule: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrDoctorNotFound
	}
	return nil
}
