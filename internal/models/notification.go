package models

import "time"

// NotificationType enumerates the engagement actions that produce notifications.
type NotificationType string

// Notification types.
const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationReply   NotificationType = "reply"
	NotificationFollow  NotificationType = "follow"
)

// Notification is a pull-only notification record addressed to a user.
// Repeated qualifying actions produce repeated notifications; there is no
// deduplication. After creation only IsRead ever changes.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID uint             `gorm:"not null;index" json:"recipient_id"`
	Type        NotificationType `gorm:"size:20;not null" json:"type"`
	ActorID     uint             `gorm:"not null" json:"actor_id"`
	PostID      *uint            `json:"post_id,omitempty"`
	IsRead      bool             `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt   time.Time        `gorm:"index" json:"created_at"`

	Actor User  `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	Post  *Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
