package eventbus

import (
	"context"
	"github.com/nrednav/cuid2"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
	"log/slog"
	"sync"
)

type Bus[T any] struct {
	log               *slog.Logger
	eventsChan        chan T
	done              chan struct{}
	stopOnce          sync.Once
	eventHandlers     map[string]func(context.Context, T)
	eventHandlersLock sync.RWMutex
	maxWorkers        int
}

func NewBus[T any](maxWorkers int) *Bus[T] {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &Bus[T]{
		log:           slog.With(slog.String("component", "eventbus")),
		eventsChan:    make(chan T),
		done:          make(chan struct{}),
		eventHandlers: make(map[string]func(context.Context, T)),
		maxWorkers:    maxWorkers,
	}
}

// PublishEvent queues the event for delivery. Events published after the
// dispatcher stopped are dropped.
func (b *Bus[T]) PublishEvent(event T) {
	go func() {
		select {
		case b.eventsChan <- event:
		case <-b.done:
		}
	}()
}

func (b *Bus[T]) SubscribeToEvents(handler func(context.Context, T)) func() {
	b.eventHandlersLock.Lock()
	defer b.eventHandlersLock.Unlock()
	subscriptionID := cuid2.Generate()
	b.eventHandlers[subscriptionID] = handler

	return func() {
		b.eventHandlersLock.Lock()
		defer b.eventHandlersLock.Unlock()
		delete(b.eventHandlers, subscriptionID)
	}
}

// StartDispatcher delivers published events until ctx is done, running at
// most maxWorkers handlers concurrently.
func (b *Bus[T]) StartDispatcher(ctx context.Context) {
	defer b.stopOnce.Do(func() { close(b.done) })
	p := pool.New().WithMaxGoroutines(b.maxWorkers)
	defer p.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-b.eventsChan:
			p.Go(func() {
				b.dispatchEvent(ctx, event)
			})
		}
	}
}

func (b *Bus[T]) dispatchEvent(ctx context.Context, event T) {
	b.eventHandlersLock.RLock()
	handlers := make([]func(context.Context, T), 0, len(b.eventHandlers))
	for _, handler := range b.eventHandlers {
		handlers = append(handlers, handler)
	}
	b.eventHandlersLock.RUnlock()

	for _, handler := range handlers {
		if recovered := panics.Try(func() { handler(ctx, event) }); recovered != nil {
			b.log.Error("event handler panicked", slog.Any("error", recovered.AsError()))
		}
	}
}
