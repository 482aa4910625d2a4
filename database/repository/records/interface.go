package recordsRepo

import (
	"context"

	"voicedesk/config"
	"voicedesk/database"
	"voicedesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRecordRepository persists the trace of finalized bookings.
type AppointmentRecordRepository interface {
	Create(ctx context.Context, record models.AppointmentRecord) (string, error)
	GetByID(ctx context.Context, id string) (*models.AppointmentRecord, error)
	GetByDoctor(ctx context.Context, doctor string) ([]models.AppointmentRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a new AppointmentRecordRepository instance using MongoDB.
func NewMongoRecordRepo() AppointmentRecordRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoRecordRepo{
		coll: db.Collection("appointment_records"),
	}
}
