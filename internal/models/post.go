package models

import "time"

// Post categories accepted by the board.
const (
	CategoryNotice   = "NOTICE"
	CategoryFree     = "FREE"
	CategoryQuestion = "QUESTION"
	CategoryStudy    = "STUDY"
	CategoryRecruit  = "RECRUIT"
)

// Post is a forum article written by a user.
type Post struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"userId" gorm:"index;not null"`
	Title          string    `json:"title" gorm:"size:200;not null"`
	Content        string    `json:"content" gorm:"type:text;not null"`
	Category       string    `json:"category" gorm:"size:20;index;not null"`
	Clicks         int64     `json:"clicks" gorm:"not null;default:0"`
	Tags           []Tag     `json:"tags" gorm:"many2many:post_tags;"`
	CreatedAt      time.Time `json:"createdAt" gorm:"index"`
	LastModifiedAt time.Time `json:"lastModifiedAt" gorm:"autoUpdateTime"`
}

// Tag labels posts; names are unique.
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;uniqueIndex;not null"`
}

// CreatePostRequest defines the request body for writing a new post
type CreatePostRequest struct {
	Title    string   `json:"title" validate:"required,min=1,max=200"`
	Content  string   `json:"content" validate:"required,min=1"`
	Category string   `json:"category" validate:"required,oneof=NOTICE FREE QUESTION STUDY RECRUIT"`
	Tags     []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=50"`
}

// UpdatePostRequest defines the request body for editing a post. Empty fields are left untouched.
type UpdatePostRequest struct {
	Title    string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content  string   `json:"content,omitempty"`
	Category string   `json:"category,omitempty" validate:"omitempty,oneof=NOTICE FREE QUESTION STUDY RECRUIT"`
	Tags     []string `json:"tags,omitempty" validate:"omitempty,max=10,dive,min=1,max=50"`
}
