package counter

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePending struct {
	mu       sync.Mutex
	counts   map[uint]int64
	restored map[uint]int64
	drainErr error
}

func newFakePending(counts map[uint]int64) *fakePending {
	return &fakePending{counts: counts, restored: map[uint]int64{}}
}

func (p *fakePending) Drain(_ context.Context, batch int64) (map[uint]int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := map[uint]int64{}
	if p.drainErr != nil {
		// Whatever was drained before the failure comes back with the error.
		for id, n := range p.counts {
			out[id] = n
			delete(p.counts, id)
		}
		return out, p.drainErr
	}
	for id, n := range p.counts {
		if int64(len(out)) == batch {
			break
		}
		out[id] = n
		delete(p.counts, id)
	}
	return out, nil
}

func (p *fakePending) Restore(_ context.Context, postID uint, n int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.restored[postID] += n
	return nil
}

type fakeWriter struct {
	mu     sync.Mutex
	clicks map[uint]int64
	err    error
	// failOnce is returned by the first call only.
	failOnce error
}

func (w *fakeWriter) AddClicks(_ context.Context, postID uint, n int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.failOnce; err != nil {
		w.failOnce = nil
		return err
	}
	if w.err != nil {
		return w.err
	}
	if w.clicks == nil {
		w.clicks = map[uint]int64{}
	}
	w.clicks[postID] += n
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestFlush_WritesAllPending(t *testing.T) {
	pending := newFakePending(map[uint]int64{1: 3, 2: 5})
	writer := &fakeWriter{}
	f := NewFlusher(pending, writer, quietLogger())

	written, err := f.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), written)
	assert.Equal(t, map[uint]int64{1: 3, 2: 5}, writer.clicks)
	assert.Empty(t, pending.counts)
}

func TestFlush_DrainsInBatches(t *testing.T) {
	counts := map[uint]int64{}
	for id := uint(1); id <= flushBatch+20; id++ {
		counts[id] = 1
	}
	pending := newFakePending(counts)
	writer := &fakeWriter{}
	f := NewFlusher(pending, writer, quietLogger())

	written, err := f.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(flushBatch+20), written)
	assert.Len(t, writer.clicks, flushBatch+20)
}

func TestFlush_RestoresOnWriteFailure(t *testing.T) {
	pending := newFakePending(map[uint]int64{9: 4})
	writer := &fakeWriter{err: errors.New("db unavailable")}
	f := NewFlusher(pending, writer, quietLogger())

	written, err := f.Flush(context.Background())
	assert.Error(t, err)
	assert.Zero(t, written)
	assert.Equal(t, map[uint]int64{9: 4}, pending.restored)
}

func TestFlush_RestoresEveryUnwrittenPost(t *testing.T) {
	pending := newFakePending(map[uint]int64{1: 3, 2: 5, 3: 7})
	writer := &fakeWriter{failOnce: errors.New("db unavailable")}
	f := NewFlusher(pending, writer, quietLogger())

	written, err := f.Flush(context.Background())
	assert.EqualError(t, err, "db unavailable")
	assert.Zero(t, written)
	assert.Empty(t, writer.clicks)
	assert.Equal(t, map[uint]int64{1: 3, 2: 5, 3: 7}, pending.restored)

	var total int64
	for _, n := range pending.restored {
		total += n
	}
	assert.Equal(t, int64(15), total+written)
}

func TestFlush_DrainError(t *testing.T) {
	pending := newFakePending(nil)
	pending.drainErr = errors.New("redis down")
	f := NewFlusher(pending, &fakeWriter{}, quietLogger())

	_, err := f.Flush(context.Background())
	assert.EqualError(t, err, "redis down")
}

func TestFlush_WritesCountsReturnedWithDrainError(t *testing.T) {
	pending := newFakePending(map[uint]int64{4: 2, 5: 6})
	pending.drainErr = errors.New("redis down")
	writer := &fakeWriter{}
	f := NewFlusher(pending, writer, quietLogger())

	written, err := f.Flush(context.Background())
	assert.EqualError(t, err, "redis down")
	assert.Equal(t, int64(8), written)
	assert.Equal(t, map[uint]int64{4: 2, 5: 6}, writer.clicks)
}

func TestFlush_RestoresCountsReturnedWithDrainError(t *testing.T) {
	pending := newFakePending(map[uint]int64{4: 2})
	pending.drainErr = errors.New("redis down")
	writer := &fakeWriter{err: errors.New("db unavailable")}
	f := NewFlusher(pending, writer, quietLogger())

	written, err := f.Flush(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "redis down")
	assert.ErrorContains(t, err, "db unavailable")
	assert.Zero(t, written)
	assert.Equal(t, map[uint]int64{4: 2}, pending.restored)
}

func TestFlusher_StartStop(t *testing.T) {
	pending := newFakePending(map[uint]int64{1: 2})
	writer := &fakeWriter{}
	f := NewFlusher(pending, writer, quietLogger())

	require.Error(t, f.Start("not a spec"))

	f = NewFlusher(pending, writer, quietLogger())
	require.NoError(t, f.Start("@every 1h"))
	f.Stop(context.Background())
	assert.Equal(t, int64(2), writer.clicks[1])
}

func TestDBClickCounter(t *testing.T) {
	writer := &fakeWriter{}
	c := NewDBClickCounter(writer)

	require.NoError(t, c.Incr(context.Background(), 4))
	require.NoError(t, c.Incr(context.Background(), 4))
	assert.Equal(t, int64(2), writer.clicks[4])
}

func TestClickKey(t *testing.T) {
	assert.Equal(t, "post:clicks:42", clickKey(42))
}
