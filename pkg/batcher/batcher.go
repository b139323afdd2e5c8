// Package batcher provides a generic buffered batch processor with rate
// limiting: items accumulate and flush either when the buffer fills or on a
// timer, whichever comes first.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// FlushFunc receives the accumulated batch. The slice is reused between
// flushes; implementations must copy if they retain it.
type FlushFunc[T any] func(context.Context, []T) error

// Batcher buffers items and flushes them by size or interval.
type Batcher[T any] struct {
	logger        *zap.Logger
	flush         FlushFunc[T]
	itemsCh       chan T
	flushSize     int
	flushInterval time.Duration
	limiter       ratelimit.Limiter

	wg   sync.WaitGroup
	stop chan struct{}
}

// New constructs a Batcher flushing at most flushesPerSecond times a second.
func New[T any](logger *zap.Logger, flush FlushFunc[T], flushSize int, flushInterval time.Duration, flushesPerSecond int) *Batcher[T] {
	return &Batcher[T]{
		logger:        logger,
		flush:         flush,
		itemsCh:       make(chan T, flushSize*2),
		flushSize:     flushSize,
		flushInterval: flushInterval,
		limiter:       ratelimit.New(flushesPerSecond),
		stop:          make(chan struct{}),
	}
}

// Start begins the background flush loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop flushes whatever is buffered and stops the loop.
func (b *Batcher[T]) Stop() {
	close(b.stop)
	b.wg.Wait()
}

// Add queues an item, respecting context cancellation. Adding after Stop
// returns context.Canceled.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.itemsCh <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.flushSize)

	doFlush := func() {
		if len(buf) == 0 {
			return
		}

		b.limiter.Take()
		if err := b.flush(ctx, buf); err != nil {
			b.logger.Error("batch not flushed", zap.Int("size", len(buf)), zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}

	for {
		select {
		case <-ctx.Done():
			doFlush()
			return

		case <-b.stop:
			// Drain anything queued before the final flush.
			for {
				select {
				case item := <-b.itemsCh:
					buf = append(buf, item)
					if len(buf) >= b.flushSize {
						doFlush()
					}
					continue
				default:
				}
				break
			}
			doFlush()
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.flushSize {
				doFlush()
			}

		case <-ticker.C:
			doFlush()
		}
	}
}
