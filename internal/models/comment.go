package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post
type Comment struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	PostID     uint           `json:"postId" gorm:"index;not null"`
	UserID     uint           `json:"userId" gorm:"index;not null"`
	Content    string         `json:"content" gorm:"type:text;not null"`
	ReComments []ReComment    `json:"reComments,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"lastModifiedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

// ReComment is a reply attached to a comment.
type ReComment struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CommentID uint           `json:"commentId" gorm:"index;not null"`
	UserID    uint           `json:"userId" gorm:"index;not null"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"lastModifiedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// CommentRequest is the body for creating or editing a comment or re-comment
type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
