package service

import (
    "context"
    "errors"
    "sync"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    q "github.com/iliyamo/fyyur/internal/queue"
)

// gatedPublisher records events and blocks each delivery until release is
// closed.
type gatedPublisher struct {
    mu      sync.Mutex
    got     []uint64
    started chan struct{}
    release chan struct{}
    err     error
}

func newGatedPublisher() *gatedPublisher {
    return &gatedPublisher{started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (g *gatedPublisher) PublishShowBooked(_ context.Context, e q.ShowBookedEvent) error {
    g.started <- struct{}{}
    <-g.release
    g.mu.Lock()
    defer g.mu.Unlock()
    g.got = append(g.got, e.ShowID)
    return g.err
}

func TestAsyncPublisherDoesNotWaitForDelivery(t *testing.T) {
    inner := newGatedPublisher()
    p := NewAsyncPublisher(inner, 4)

    require.NoError(t, p.PublishShowBooked(context.Background(), q.ShowBookedEvent{ShowID: 1}))
    require.NoError(t, p.PublishShowBooked(context.Background(), q.ShowBookedEvent{ShowID: 2}))
    <-inner.started

    close(inner.release)
    p.Close()
    assert.Equal(t, []uint64{1, 2}, inner.got)
}

func TestAsyncPublisherDropsWhenFull(t *testing.T) {
    inner := newGatedPublisher()
    p := NewAsyncPublisher(inner, 1)

    require.NoError(t, p.PublishShowBooked(context.Background(), q.ShowBookedEvent{ShowID: 1}))
    <-inner.started // worker holds event 1, the buffer is empty again
    require.NoError(t, p.PublishShowBooked(context.Background(), q.ShowBookedEvent{ShowID: 2}))
    err := p.PublishShowBooked(context.Background(), q.ShowBookedEvent{ShowID: 3})
    assert.ErrorIs(t, err, ErrPublishQueueFull)

    close(inner.release)
    p.Close()
    assert.Equal(t, []uint64{1, 2}, inner.got)
}

func TestAsyncPublisherSurvivesDeliveryErrors(t *testing.T) {
    inner := newGatedPublisher()
    inner.err = errors.New("broker down")
    close(inner.release)
    p := NewAsyncPublisher(inner, 2)

    require.NoError(t, p.PublishShowBooked(context.Background(), q.ShowBookedEvent{ShowID: 7}))
    require.NoError(t, p.PublishShowBooked(context.Background(), q.ShowBookedEvent{ShowID: 8}))
    p.Close()
    p.Close()
    assert.Equal(t, []uint64{7, 8}, inner.got)
}
