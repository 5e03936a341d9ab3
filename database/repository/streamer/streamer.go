package streamerRepo

import (
	"context"
	"errors"

	"streambook/models"
)

// ErrNotFound is returned when no streamer matches the lookup.
var ErrNotFound = errors.New("streamer not found")

// StreamerRepository defines access to streamer profiles.
type StreamerRepository interface {
	GetByID(ctx context.Context, id string) (*models.Streamer, error)
}
