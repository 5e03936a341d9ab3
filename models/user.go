package models

import "time"

// User is an account holder: a client booking streamers, or the owning user
// behind a streamer profile.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Username     string    `bson:"username" json:"username"`
	DisplayName  string    `bson:"displayName" json:"displayName"`
	Bio          string    `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL    string    `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CoverURL     string    `bson:"coverUrl,omitempty" json:"coverUrl,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProfileUpdateRequest carries the editable settings-page fields. Nil fields
// are left untouched.
type ProfileUpdateRequest struct {
	Username    *string `json:"username,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
	CoverURL    *string `json:"coverUrl,omitempty"`
	FCMToken    *string `json:"fcmToken,omitempty"`
}
