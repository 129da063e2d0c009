package services

import (
	"context"
	"errors"
	"time"

	"github.com/devillage/teamproject/backend/internal/models"
	"github.com/devillage/teamproject/backend/internal/repositories"
	"github.com/google/uuid"
)

// EventSink receives interaction events once the relational change has committed.
type EventSink interface {
	Publish(ctx context.Context, event models.InteractionEvent) error
}

// MultiSink publishes to every sink and joins their errors.
type MultiSink []EventSink

func (m MultiSink) Publish(ctx context.Context, event models.InteractionEvent) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ActivitySink stores events in the user's activity history.
type ActivitySink struct {
	repo repositories.ActivityRepository
}

func NewActivitySink(repo repositories.ActivityRepository) *ActivitySink {
	return &ActivitySink{repo: repo}
}

func (a *ActivitySink) Publish(ctx context.Context, event models.InteractionEvent) error {
	return a.repo.RecordActivity(ctx, &models.Activity{
		EventID:    event.ID,
		Action:     event.Action,
		UserID:     event.UserID,
		PostID:     event.PostID,
		OccurredAt: event.OccurredAt,
	})
}

type noopSink struct{}

func (noopSink) Publish(context.Context, models.InteractionEvent) error { return nil }

func newEvent(action string, userID, postID uint, now time.Time) models.InteractionEvent {
	return models.InteractionEvent{
		ID:         uuid.NewString(),
		Action:     action,
		UserID:     userID,
		PostID:     postID,
		OccurredAt: now.UTC(),
	}
}
