package services

import (
	"errors"
	"fmt"
)

// EntityKind names the type of record a lookup failed to resolve.
type EntityKind string

const (
	KindUser      EntityKind = "user"
	KindPost      EntityKind = "post"
	KindComment   EntityKind = "comment"
	KindReComment EntityKind = "re-comment"
)

// NotFoundError reports that an identifier did not resolve to a record.
type NotFoundError struct {
	Kind EntityKind
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

var (
	// ErrAlreadyReported is returned when a user reports the same post twice.
	ErrAlreadyReported = errors.New("post already reported by this user")

	// ErrForbidden is returned when the caller does not own the record being changed.
	ErrForbidden = errors.New("not the author of this resource")
)

// IsNotFound reports whether err is a NotFoundError, optionally of one of the given kinds.
func IsNotFound(err error, kinds ...EntityKind) bool {
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		return false
	}
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if nf.Kind == k {
			return true
		}
	}
	return false
}
