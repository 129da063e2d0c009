package models

import "time"

// Bookmark represents a post saved by a user. At most one per (user, post).
type Bookmark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_bookmark_user_post"`
	PostID    uint      `json:"postId" gorm:"not null;index;uniqueIndex:idx_bookmark_user_post"`
	CreatedAt time.Time `json:"createdAt"`
}
