package streamerRepo

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

// MongoStreamerRepo implements StreamerRepository using MongoDB.
type MongoStreamerRepo struct {
	coll *mongo.Collection
}

// NewMongoStreamerRepo creates a StreamerRepository backed by MongoDB.
func NewMongoStreamerRepo() StreamerRepository {
	coll := database.Collection("streamers")
	repo := &MongoStreamerRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create streamer indexes: %v\n", err)
	}
	return repo
}

func (r *MongoStreamerRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoStreamerRepo) GetByID(ctx context.Context, id string) (*models.Streamer, error) {
	var streamer models.Streamer
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&streamer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch streamer %s: %w", id, err)
	}
	return &streamer, nil
}
