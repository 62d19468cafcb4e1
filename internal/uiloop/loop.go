package uiloop

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

const queueSize = 64

// ErrStopped is returned when work is submitted to a loop that is not running
var ErrStopped = errors.New("ui loop stopped")

// Loop serializes every controller operation onto a single goroutine.
// Input events, engine notifications and timer continuations are all
// posted here, so controller state is never touched concurrently.
type Loop struct {
	logger *zap.Logger
	queue  chan func()
	done   chan struct{}
	once   sync.Once
}

// New creates a loop. Run must be called for posted work to execute.
func New(logger *zap.Logger) *Loop {
	return &Loop{
		logger: logger,
		queue:  make(chan func(), queueSize),
		done:   make(chan struct{}),
	}
}

// Run processes posted work until ctx is cancelled or Stop is called
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Debug("UI loop started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("UI loop stopped", zap.Error(ctx.Err()))
			l.Stop()
			return ctx.Err()
		case <-l.done:
			l.logger.Debug("UI loop stopped")
			return nil
		case fn := <-l.queue:
			l.run(fn)
		}
	}
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Recovered panic in UI task", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	fn()
}

// Post queues fn for execution on the loop.
// It reports false when the loop has been stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Call runs fn on the loop and waits for its result
func (l *Loop) Call(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	if !l.Post(func() { result <- fn() }) {
		return ErrStopped
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrStopped
	}
}

// AfterFunc runs fn on the loop once d has elapsed.
// The timer goroutine only posts; fn itself never runs off the loop.
func (l *Loop) AfterFunc(d time.Duration, fn func()) func() bool {
	t := time.AfterFunc(d, func() {
		if !l.Post(fn) {
			l.logger.Debug("Dropped timer continuation, loop stopped")
		}
	})
	return t.Stop
}

// Stop terminates the loop. Pending work is discarded.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}

// Done is closed once the loop has been stopped
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
