package doctorRepo

import (
	"context"

	"voicedesk/config"
	"voicedesk/database"
	"voicedesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// DoctorScheduleRepository stores the clinic's bookable doctors: their
// department, scheduling event type and recurring weekly availability.
type DoctorScheduleRepository interface {
	Upsert(ctx context.Context, schedule models.DoctorSchedule) (string, error)
	GetByName(ctx context.Context, name string) (*models.DoctorSchedule, error)
	List(ctx context.Context) ([]models.DoctorSchedule, error)
	DeleteByName(ctx context.Context, name string) error
}

type mongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo returns a new DoctorScheduleRepository instance using MongoDB.
func NewMongoDoctorRepo() DoctorScheduleRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoDoctorRepo{
		coll: db.Collection("doctor_schedules"),
	}
}
