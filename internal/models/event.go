package models

import "time"

// Interaction actions emitted after a toggle or report commits.
const (
	ActionBookmarkAdded   = "bookmark.added"
	ActionBookmarkRemoved = "bookmark.removed"
	ActionLikeAdded       = "like.added"
	ActionLikeRemoved     = "like.removed"
	ActionPostReported    = "post.reported"
)

// InteractionEvent describes a committed change to a user/post relation.
type InteractionEvent struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	UserID     uint      `json:"userId"`
	PostID     uint      `json:"postId"`
	OccurredAt time.Time `json:"occurredAt"`
}
