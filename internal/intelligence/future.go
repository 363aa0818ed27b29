package intelligence

import (
	"context"
	"sync"
)

// Future is the handle to an asynchronous result. It always resolves: a
// cancelled future resolves with whatever value the producer chose for
// cancellation.
type Future[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc
	once   sync.Once
	val    T
}

func newFuture[T any](cancel context.CancelFunc) *Future[T] {
	return &Future[T]{done: make(chan struct{}), cancel: cancel}
}

func (f *Future[T]) resolve(v T) {
	f.once.Do(func() {
		f.val = v
		close(f.done)
	})
}

// Wait blocks until the future resolves or ctx is done. Abandoning a Wait
// does not cancel the future; call Cancel for that.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed once the value is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Cancel aborts the in-flight work. It is safe to call more than once and
// after resolution.
func (f *Future[T]) Cancel() {
	f.cancel()
}

// Resolved returns a future that already holds v.
func Resolved[T any](v T) *Future[T] {
	f := newFuture[T](func() {})
	f.resolve(v)
	return f
}
