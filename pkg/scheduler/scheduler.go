package scheduler

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type workRequest[T any] struct {
	fn     Work[T]
	c      chan Result[T]
	ctx    context.Context
	cancel context.CancelFunc
}

// Scheduler runs work on a fixed number of workers. Pending work is
// dispatched in FIFO order.
type Scheduler[T any] struct {
	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	idle    int
	pending queue[workRequest[T]]

	work    chan workRequest[T]
	done    chan struct{}
	close   chan struct{}
	stopped chan struct{}

	mainCtx    context.Context
	mainCancel context.CancelFunc
	logger     *zap.SugaredLogger
}

func NewScheduler[T any](nbWorkers int) *Scheduler[T] {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler[T]{
		idle:       max(1, nbWorkers),
		work:       make(chan workRequest[T]),
		done:       make(chan struct{}),
		close:      make(chan struct{}),
		stopped:    make(chan struct{}),
		mainCtx:    ctx,
		mainCancel: cancel,
		logger:     zap.S().Named("scheduler"),
	}
	go s.run()
	return s
}

// AddWork queues w. After Close the returned future holds context.Canceled.
func (s *Scheduler[T]) AddWork(w Work[T]) *Future[T] {
	c := make(chan Result[T], 1)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		c <- Result[T]{Err: context.Canceled}
		return newFuture(c, func() {})
	}

	ctx, cancel := context.WithCancel(s.mainCtx)
	s.work <- workRequest[T]{fn: w, c: c, ctx: ctx, cancel: cancel}
	return newFuture(c, cancel)
}

// Close cancels running work, fails pending work with context.Canceled and
// waits for in-flight workers to return.
func (s *Scheduler[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.mainCancel()
	close(s.close)
	<-s.stopped
	s.wg.Wait()
}

func (s *Scheduler[T]) run() {
	defer close(s.stopped)

	for {
		select {
		case w := <-s.work:
			s.pending.Push(w)
			s.dispatch()
		case <-s.done:
			s.idle++
			s.dispatch()
		case <-s.close:
			for s.pending.Len() > 0 {
				r := s.pending.Pop()
				r.cancel()
				r.c <- Result[T]{Err: context.Canceled}
			}
			return
		}
	}
}

func (s *Scheduler[T]) dispatch() {
	for s.idle > 0 && s.pending.Len() > 0 {
		s.idle--
		s.wg.Add(1)
		go s.execute(s.pending.Pop())
	}
}

func (s *Scheduler[T]) execute(r workRequest[T]) {
	defer s.wg.Done()

	r.c <- s.call(r)
	r.cancel()

	select {
	case s.done <- struct{}{}:
	case <-s.stopped:
	}
}

func (s *Scheduler[T]) call(r workRequest[T]) (result Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Errorw("worker panicked", "panic", p)
			result = Result[T]{Err: fmt.Errorf("worker panicked: %v", p)}
		}
	}()

	if err := r.ctx.Err(); err != nil {
		return Result[T]{Err: err}
	}

	v, err := r.fn(r.ctx)
	return Result[T]{Data: v, Err: err}
}
