package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const listenerTimeout = time.Minute

type Event interface {
	Name() string
}

type Listener func(ctx context.Context, event Event) error

// Bus fans each published event out to its subscribers, one goroutine per listener.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	wg        sync.WaitGroup
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger,
	}
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish does not wait for the listeners. They run detached from ctx with their own timeout.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	eventName := event.Name()
	for _, listener := range b.listeners[eventName] {
		b.wg.Add(1)
		go func(l Listener) {
			defer b.wg.Done()
			listenerCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), listenerTimeout)
			defer cancel()

			if err := l(listenerCtx, event); err != nil {
				b.logger.Error("event listener failed",
					zap.String("event", eventName),
					zap.Error(err),
				)
			}
		}(listener)
	}
}

// Wait blocks until every listener started so far has returned.
func (b *Bus) Wait() {
	b.wg.Wait()
}
