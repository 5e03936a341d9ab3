package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"streambook/database"
	"streambook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoScheduleRepo implements ScheduleRepository using MongoDB.
type MongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo creates a ScheduleRepository backed by MongoDB.
func NewMongoScheduleRepo() ScheduleRepository {
	coll := database.Collection("schedules")
	repo := &MongoScheduleRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create schedule indexes: %v\n", err)
	}
	return repo
}

func (r *MongoScheduleRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "streamerId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoScheduleRepo) GetWeeklySchedule(ctx context.Context, streamerID string) (*models.WeeklySchedule, error) {
	var schedule models.WeeklySchedule
	err := r.coll.FindOne(ctx, bson.M{"streamerId": streamerID}).Decode(&schedule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch schedule for streamer %s: %w", streamerID, err)
	}
	return &schedule, nil
}

func (r *MongoScheduleRepo) SetWeeklySchedule(ctx context.Context, schedule *models.WeeklySchedule) error {
	schedule.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"streamerId": schedule.StreamerID}, schedule, opts)
	if err != nil {
		return fmt.Errorf("failed to store schedule for streamer %s: %w", schedule.StreamerID, err)
	}
	return nil
}
