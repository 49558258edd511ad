package storage

import (
	"context"
	"sync"

	"github.com/okian/riddlerush/pkg/logger"
	"github.com/okian/riddlerush/pkg/metrics"
)

// defaultWriteQueueCapacity bounds the pending-write queue.
const defaultWriteQueueCapacity = 256

type opKind int

const (
	opSet opKind = iota
	opRemove
	opClear
)

type writeOp struct {
	kind  opKind
	key   string
	value []byte
}

// WriteBehind decorates a Store with an asynchronous write queue so
// persistence never blocks gameplay. Writes are fire-and-forget: when
// the queue is full or the backing store fails, the write is dropped,
// counted, and logged. Reads go straight to the backing store and may
// not observe writes still in flight.
type WriteBehind struct {
	backing Store
	ops     chan writeOp
	log     logger.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// WriteBehindOption applies a configuration option to the WriteBehind store.
type WriteBehindOption func(*writeBehindConfig)

type writeBehindConfig struct {
	capacity int
	log      logger.Logger
}

// WithQueueCapacity bounds the number of pending writes.
func WithQueueCapacity(capacity int) WriteBehindOption {
	return func(c *writeBehindConfig) {
		if capacity > 0 {
			c.capacity = capacity
		}
	}
}

// WithLogger sets a custom logger for the write-behind queue.
func WithLogger(l logger.Logger) WriteBehindOption {
	return func(c *writeBehindConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// NewWriteBehind wraps backing with an asynchronous write queue and
// starts the drain goroutine.
func NewWriteBehind(backing Store, opts ...WriteBehindOption) *WriteBehind {
	cfg := writeBehindConfig{capacity: defaultWriteQueueCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	w := &WriteBehind{
		backing: backing,
		ops:     make(chan writeOp, cfg.capacity),
		log:     cfg.log,
		done:    make(chan struct{}),
	}
	go w.drain()
	return w
}

func (w *WriteBehind) drain() {
	defer close(w.done)
	ctx := context.Background()
	for op := range w.ops {
		var err error
		switch op.kind {
		case opSet:
			err = w.backing.Set(ctx, op.key, op.value)
		case opRemove:
			err = w.backing.Remove(ctx, op.key)
		case opClear:
			err = w.backing.Clear(ctx)
		}
		if err != nil {
			metrics.RecordPersistenceError()
			if w.log != nil {
				w.log.Warn(ctx, "write-behind flush failed",
					logger.String("key", op.key),
					logger.Error(err),
				)
			}
		}
		metrics.UpdatePersistenceDepth(len(w.ops))
	}
}

// enqueue hands an op to the drain goroutine, dropping it when the
// queue is full or the store is closed. Dropping is deliberate: a
// failed write never stalls or rolls back in-memory game state.
func (w *WriteBehind) enqueue(ctx context.Context, op writeOp) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return ErrClosed
	}
	select {
	case w.ops <- op:
		metrics.UpdatePersistenceDepth(len(w.ops))
		return nil
	default:
		metrics.RecordPersistenceError()
		if w.log != nil {
			w.log.Warn(ctx, "write-behind queue full; dropping write",
				logger.String("key", op.key),
			)
		}
		return nil
	}
}

// Get reads through to the backing store.
func (w *WriteBehind) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return w.backing.Get(ctx, key)
}

// Set enqueues an asynchronous write.
func (w *WriteBehind) Set(ctx context.Context, key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	return w.enqueue(ctx, writeOp{kind: opSet, key: key, value: cp})
}

// Remove enqueues an asynchronous delete.
func (w *WriteBehind) Remove(ctx context.Context, key string) error {
	return w.enqueue(ctx, writeOp{kind: opRemove, key: key})
}

// Clear enqueues an asynchronous namespace wipe.
func (w *WriteBehind) Clear(ctx context.Context) error {
	return w.enqueue(ctx, writeOp{kind: opClear})
}

// Close stops accepting writes and waits for pending ones to flush.
func (w *WriteBehind) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.ops)
	w.mu.Unlock()

	<-w.done
	return nil
}
