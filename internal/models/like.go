package models

import "time"

// Like represents a like on a post. At most one per (user, post).
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_like_user_post"`
	PostID    uint      `json:"postId" gorm:"not null;index;uniqueIndex:idx_like_user_post"`
	CreatedAt time.Time `json:"createdAt"`
}
