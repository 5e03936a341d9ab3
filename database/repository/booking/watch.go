package bookingRepo

import (
	"context"
	"fmt"

	"streambook/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// WatchChanges opens a change stream on the bookings collection and emits an
// advisory signal whenever a booking for the given streamer is inserted,
// updated, or deleted. Delete events carry no document, so they always emit.
// Signals coalesce: a pending one is enough, the consumer refetches wholesale.
func (r *MongoBookingRepo) WatchChanges(ctx context.Context, streamerID string) (<-chan struct{}, error) {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := r.coll.Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open booking change stream: %w", err)
	}

	out := make(chan struct{}, 1)
	go func() {
		logger := utils.GetLogger()
		defer close(out)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var event struct {
				OperationType string `bson:"operationType"`
				FullDocument  struct {
					StreamerID string `bson:"streamerId"`
				} `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				logger.Warn("booking change stream: decode failed", zap.Error(err))
				continue
			}
			if event.FullDocument.StreamerID != "" && event.FullDocument.StreamerID != streamerID {
				continue
			}
			select {
			case out <- struct{}{}:
			default:
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			logger.Warn("booking change stream closed",
				zap.String("streamerId", streamerID), zap.Error(err))
		}
	}()
	return out, nil
}
