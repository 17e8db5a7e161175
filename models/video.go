package models

import "time"

// Video represents a published video owned by a user account.
// The account core never mutates videos; they appear here only as
// members of denormalized read views (watch history, channel profile).
type Video struct {
	VideoID     string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Video model.
func (v Video) TableName() string {
	return "videos"
}

// WatchHistoryEntry is a single row of a user's watch history read view:
// the watched video joined with its owner's display fields.
type WatchHistoryEntry struct {
	Video Video `json:"video"`

	// OwnerUserName and OwnerAvatarURL are denormalized from the video
	// owner's account for display purposes.
	OwnerUserName  string `json:"ownerUserName"`
	OwnerFullName  string `json:"ownerFullName"`
	OwnerAvatarURL string `json:"ownerAvatarUrl"`

	// WatchedAt is the time the viewer watched the video. Entries are
	// returned most recent first.
	WatchedAt time.Time `json:"watchedAt"`
}
