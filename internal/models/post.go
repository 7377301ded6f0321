package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StringList is an ordered list of strings stored as a JSON column.
type StringList []string

// Value serializes the list for storage.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan deserializes the list from storage.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// Post represents a blog post in the Inkwell application.
//
// LikeCount, ViewCount, CommentCount and ShareCount are denormalized
// counters and are authoritative for current totals; the append-only event
// logs are authoritative for historical time series only. LikeCount must
// equal the number of Like rows for the post and CommentCount the number of
// live comments at all times.
type Post struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Title    string     `gorm:"not null" json:"title"`
	Content  string     `gorm:"type:text;not null" json:"content"`
	MediaURL string     `json:"media_url"`
	UserID   uint       `gorm:"not null;index" json:"user_id"`
	User     User       `gorm:"foreignKey:UserID" json:"user"`
	Tags     StringList `gorm:"type:jsonb" json:"tags"`
	Category string     `gorm:"index" json:"category"`

	LikeCount    int `gorm:"not null;default:0" json:"like_count"`
	ViewCount    int `gorm:"not null;default:0" json:"view_count"`
	CommentCount int `gorm:"not null;default:0" json:"comment_count"`
	ShareCount   int `gorm:"not null;default:0" json:"share_count"`

	// Liked indicates whether the current requesting user liked this post (computed)
	Liked bool `gorm:"-" json:"liked"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Like represents a user's like on a post. It is the persisted form of the
// post's liked-by set: the combination of UserID and PostID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

// Bookmark marks a post as saved by a user for later reading. Bookmarking
// is private: it produces no notification and touches no counter. The
// combination of UserID and PostID must be unique.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post_bookmark" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post_bookmark" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	Post Post `gorm:"foreignKey:PostID" json:"post,omitempty"`
}
