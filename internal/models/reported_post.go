package models

import "time"

// ReportedPost records a user flagging a post. Reports are never withdrawn.
type ReportedPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_report_user_post"`
	PostID    uint      `json:"postId" gorm:"not null;index;uniqueIndex:idx_report_user_post"`
	CreatedAt time.Time `json:"createdAt"`
}
