package counter

import (
	"context"
	"errors"
	"time"

	"github.com/devillage/teamproject/backend/pkg/metrics"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const flushBatch = 500

// PendingClicks is the buffered side of a click counter.
type PendingClicks interface {
	Drain(ctx context.Context, batch int64) (map[uint]int64, error)
	Restore(ctx context.Context, postID uint, n int64) error
}

// Flusher periodically moves buffered clicks into the database.
type Flusher struct {
	pending PendingClicks
	writer  ClickWriter
	log     *logrus.Logger
	cron    *cron.Cron
}

func NewFlusher(pending PendingClicks, writer ClickWriter, log *logrus.Logger) *Flusher {
	return &Flusher{
		pending: pending,
		writer:  writer,
		log:     log,
		cron:    cron.New(),
	}
}

// Start schedules Flush with a cron spec such as "@every 1m".
func (f *Flusher) Start(spec string) error {
	_, err := f.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := f.Flush(ctx); err != nil {
			f.log.WithError(err).Error("click flush failed")
		}
	})
	if err != nil {
		return err
	}
	f.cron.Start()
	return nil
}

// Stop halts the schedule and runs a last flush.
func (f *Flusher) Stop(ctx context.Context) {
	<-f.cron.Stop().Done()
	if _, err := f.Flush(ctx); err != nil {
		f.log.WithError(err).Error("final click flush failed")
	}
}

// Flush writes all pending clicks and returns how many were written. Counts
// that fail to write are restored to the buffer, as are counts returned
// alongside a drain error.
func (f *Flusher) Flush(ctx context.Context) (int64, error) {
	var written int64
	for {
		counts, drainErr := f.pending.Drain(ctx, flushBatch)
		n, writeErr := f.write(ctx, counts)
		written += n
		if err := errors.Join(drainErr, writeErr); err != nil {
			return written, err
		}
		if len(counts) < flushBatch {
			return written, nil
		}
	}
}

// write stores every entry of counts. Once a write fails the remaining
// entries are restored without being attempted.
func (f *Flusher) write(ctx context.Context, counts map[uint]int64) (int64, error) {
	var (
		written  int64
		writeErr error
	)
	for postID, n := range counts {
		if writeErr == nil {
			err := f.writer.AddClicks(ctx, postID, n)
			if err == nil {
				metrics.RecordClickFlush(n, true)
				written += n
				continue
			}
			writeErr = err
			f.log.WithField("post_id", postID).WithError(err).Warn("restoring unflushed clicks")
		}
		metrics.RecordClickFlush(n, false)
		if err := f.pending.Restore(ctx, postID, n); err != nil {
			f.log.WithFields(logrus.Fields{"post_id": postID, "clicks": n}).WithError(err).Error("lost clicks")
		}
	}
	return written, writeErr
}
