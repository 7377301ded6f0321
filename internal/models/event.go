package models

import "time"

// The event logs below are append-only: rows are never updated, and only
// PostLikeEvent rows are ever deleted (one row per unlike). They exist to
// drive date-bucketed analytics; the denormalized counters on Post remain
// authoritative for current totals.

// PostViewEvent records a single view of a post.
type PostViewEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	OccurredAt time.Time `gorm:"not null;index" json:"occurred_at"`
}

// PostLikeEvent records a like of a post. Removed on unlike.
type PostLikeEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	OccurredAt time.Time `gorm:"not null;index" json:"occurred_at"`
}

// PostCommentEvent records a comment on a post.
type PostCommentEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	OccurredAt time.Time `gorm:"not null;index" json:"occurred_at"`
}
