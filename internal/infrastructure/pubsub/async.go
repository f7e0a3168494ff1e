package pubsub

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/orris-inc/memberhub/internal/domain/shared/events"
	"github.com/orris-inc/memberhub/internal/shared/goroutine"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

const (
	publishTimeout = 5 * time.Second

	defaultQueueSize = 256
	defaultWorkers   = 2
)

// AsyncPublisher hands events to a fixed pool of workers that deliver them
// through the wrapped publisher. Publish never fails; a full queue or a
// delivery error drops the event with a warning. Close stops intake, drains
// the queue, then closes the underlying broker connection.
type AsyncPublisher struct {
	next   events.EventPublisher
	closer io.Closer
	logger logger.Interface

	queue chan events.AccountingEvent
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

var (
	_ events.EventPublisher = (*AsyncPublisher)(nil)
	_ io.Closer             = (*AsyncPublisher)(nil)
)

// NewAsyncPublisher starts the worker pool. closer may be nil when next holds
// no connection of its own.
func NewAsyncPublisher(next events.EventPublisher, closer io.Closer, logger logger.Interface) *AsyncPublisher {
	return newAsyncPublisher(next, closer, logger, defaultQueueSize, defaultWorkers)
}

func newAsyncPublisher(next events.EventPublisher, closer io.Closer, logger logger.Interface, queueSize, workers int) *AsyncPublisher {
	p := &AsyncPublisher{
		next:   next,
		closer: closer,
		logger: logger,
		queue:  make(chan events.AccountingEvent, queueSize),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		goroutine.SafeGo(logger, "event-publisher", func() {
			defer p.wg.Done()
			for event := range p.queue {
				p.deliver(event)
			}
		})
	}
	return p
}

func (p *AsyncPublisher) Publish(_ context.Context, event events.AccountingEvent) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.logger.Warnw("accounting event dropped, publisher closed", "type", event.Type)
		return nil
	}

	select {
	case p.queue <- event:
	default:
		p.logger.Warnw("accounting event dropped, queue full", "type", event.Type, "capacity", cap(p.queue))
	}
	return nil
}

func (p *AsyncPublisher) deliver(event events.AccountingEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := p.next.Publish(ctx, event); err != nil {
		p.logger.Warnw("accounting event dropped", "type", event.Type, "error", err)
	}
}

// Close is safe to call more than once.
func (p *AsyncPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()

	if p.closer != nil {
		return p.closer.Close()
	}
	return nil
}
