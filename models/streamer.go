package models

import "time"

// Streamer is a bookable live-streaming talent profile.
type Streamer struct {
	ID          string    `bson:"id" json:"id"`
	OwnerUserID string    `bson:"ownerUserId" json:"ownerUserId"`
	DisplayName string    `bson:"displayName" json:"displayName"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	Platforms   []string  `bson:"platforms" json:"platforms"`
	HourlyRate  float64   `bson:"hourlyRate" json:"hourlyRate"`
	AvatarURL   string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
