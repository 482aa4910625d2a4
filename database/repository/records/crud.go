package recordsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voicedesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrRecordNotFound is returned when no appointment record matches an ID.
var ErrRecordNotFound = errors.New("appointment record not found")

// Create inserts an appointment record and returns its ID. Records are
// immutable once written; the booking flow creates each one exactly once.
func (r *mongoRecordRepo) Create(ctx context.Context, record models.AppointmentRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return "", fmt.Errorf("insert appointment record: %w", err)
	}
	return record.ID, nil
}

func (r *mongoRecordRepo) GetByID(ctx context.Context, id string) (*models.AppointmentRecord, error) {
	var record models.AppointmentRecord
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find appointment record: %w", err)
	}
	return &record, nil
}

// GetByDoctor lists a doctor's records, most recent appointment first.
// The doctor argument is the normalized storage key.
func (r *mongoRecordRepo) GetByDoctor(ctx context.Context, doctor string) ([]models.AppointmentRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startsAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"doctor": doctor}, opts)
	if err != nil {
		return nil, fmt.Errorf("list appointment records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.AppointmentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode appointment records: %w", err)
	}
	return records, nil
}

func (r *mongoRecordRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete appointment record: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}
