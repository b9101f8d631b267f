package service

import (
    "context"
    "errors"
    "log/slog"
    "sync"
    "time"

    "github.com/iliyamo/fyyur/internal/metrics"
    q "github.com/iliyamo/fyyur/internal/queue"
)

// ErrPublishQueueFull is returned when the background queue has no room.
var ErrPublishQueueFull = errors.New("publish queue full")

// AsyncPublisher hands events to a single background worker so a slow or
// unreachable broker never holds up the request that booked the show.
// PublishShowBooked must not be called after Close.
type AsyncPublisher struct {
    next    Publisher
    timeout time.Duration
    events  chan q.ShowBookedEvent
    done    chan struct{}
    once    sync.Once
}

// NewAsyncPublisher starts a worker forwarding to next.  At most buffer
// events wait for delivery; further events are dropped.
func NewAsyncPublisher(next Publisher, buffer int) *AsyncPublisher {
    if buffer < 1 {
        buffer = 1
    }
    p := &AsyncPublisher{
        next:    next,
        timeout: 10 * time.Second,
        events:  make(chan q.ShowBookedEvent, buffer),
        done:    make(chan struct{}),
    }
    go p.run()
    return p
}

// PublishShowBooked queues event without blocking.  The request context is
// not used for delivery since the request finishes first.
func (p *AsyncPublisher) PublishShowBooked(_ context.Context, event q.ShowBookedEvent) error {
    select {
    case p.events <- event:
        return nil
    default:
        metrics.EventsPublished.WithLabelValues(q.ShowBookedQueue, "dropped").Inc()
        return ErrPublishQueueFull
    }
}

func (p *AsyncPublisher) run() {
    defer close(p.done)
    for event := range p.events {
        ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
        if err := p.next.PublishShowBooked(ctx, event); err != nil {
            slog.Warn("publish show.booked failed", "show_id", event.ShowID, "error", err)
        }
        cancel()
    }
}

// Close stops accepting events and waits until the queued ones have been
// handed to the underlying publisher.
func (p *AsyncPublisher) Close() {
    p.once.Do(func() { close(p.events) })
    <-p.done
}
