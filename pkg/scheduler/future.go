package scheduler

import "context"

// Work is a unit of work run by the scheduler.
type Work[T any] func(ctx context.Context) (T, error)

// Result carries the outcome of a Work.
type Result[T any] struct {
	Data T
	Err  error
}

// Future delivers the single Result of a submitted Work.
type Future[T any] struct {
	c      chan Result[T]
	cancel context.CancelFunc
}

func newFuture[T any](c chan Result[T], cancel context.CancelFunc) *Future[T] {
	return &Future[T]{c: c, cancel: cancel}
}

// C returns the channel the result is sent on. It receives exactly one value.
func (f *Future[T]) C() <-chan Result[T] {
	return f.c
}

// Stop cancels the context passed to the work.
func (f *Future[T]) Stop() {
	f.cancel()
}

// Wait blocks until the result is available or ctx is done. When ctx is done
// first the work is stopped.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case r := <-f.c:
		return r.Data, r.Err
	case <-ctx.Done():
		f.Stop()
		var zero T
		return zero, ctx.Err()
	}
}
