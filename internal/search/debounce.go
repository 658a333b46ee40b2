package search

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultDebounce is the quiet window applied to search-as-you-type input.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces rapid query updates into one fetch per quiet window.
// Each firing carries a monotonically increasing sequence number; a
// completion whose sequence is no longer the latest issued is discarded, so
// a slow early request can never overwrite the result of a later one.
type Debouncer[T any] struct {
	delay   time.Duration
	fetch   func(context.Context, string) (T, error)
	deliver func(string, T)
	logger  *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewDebouncer creates a debouncer. fetch runs after the quiet window;
// deliver receives the query and its result, only for fresh completions.
// A non-positive delay uses the default window.
func NewDebouncer[T any](delay time.Duration, fetch func(context.Context, string) (T, error), deliver func(string, T), logger *slog.Logger) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Debouncer[T]{
		delay:   delay,
		fetch:   fetch,
		deliver: deliver,
		logger:  logger,
	}
}

// Query registers new input, restarting the quiet window and invalidating
// any in-flight fetch from earlier input.
func (d *Debouncer[T]) Query(ctx context.Context, query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.run(ctx, seq, query)
	})
}

// Flush fires the pending query immediately, skipping the remaining quiet
// window. It is a no-op when nothing is pending.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil && d.timer.Stop() {
		d.timer.Reset(0)
	}
}

// Stop cancels any pending firing. In-flight fetches finish but their
// completions are discarded.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++ // invalidate in-flight completions
}

func (d *Debouncer[T]) run(ctx context.Context, seq uint64, query string) {
	result, err := d.fetch(ctx, query)
	if err != nil {
		d.logger.Warn("debounced fetch failed", "query", query, "error", err)
		return
	}

	d.mu.Lock()
	fresh := seq == d.seq
	d.mu.Unlock()
	if !fresh {
		d.logger.Debug("discarding stale completion", "query", query, "seq", seq)
		return
	}
	d.deliver(query, result)
}
