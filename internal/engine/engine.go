package engine

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Loop is the UI loop every controller call runs on
type Loop interface {
	Run(ctx context.Context) error
	Call(ctx context.Context, fn func() error) error
	Stop()
}

// Controller owns the video output
type Controller interface {
	Start(ctx context.Context) error
	Close(ctx context.Context) error
}

// Console is the interactive front end
type Console interface {
	Run(ctx context.Context) error
	Close() error
}

// Engine orchestrates the player: it runs the UI loop, attaches the video
// output and serves the console until the user quits.
type Engine struct {
	logger     *zap.Logger
	loop       Loop
	controller Controller
	console    Console

	cancel context.CancelFunc
	wg     sync.WaitGroup
	done   chan struct{}
}

// NewEngine creates a new orchestration engine
func NewEngine(logger *zap.Logger, loop Loop, controller Controller, console Console) *Engine {
	return &Engine{
		logger:     logger,
		loop:       loop,
		controller: controller,
		console:    console,
		done:       make(chan struct{}),
	}
}

// Start launches the UI loop and the console in goroutines and attaches
// the video output. It returns once the output is attached or degraded.
func (e *Engine) Start(ctx context.Context) error {
	e.logger.Info("Engine starting...")

	// the start context only covers startup; the loop outlives it
	runCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if err := e.loop.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			e.logger.Error("UI loop failed", zap.Error(err))
		}
	}()

	err := e.loop.Call(ctx, func() error { return e.controller.Start(runCtx) })
	if err != nil {
		// degraded: the console still works and a full-screen intent retries
		e.logger.Error("Video output unavailable at startup", zap.Error(err))
	}

	go e.runConsole(runCtx)
	return nil
}

func (e *Engine) runConsole(ctx context.Context) {
	defer close(e.done)
	if err := e.console.Run(ctx); err != nil {
		e.logger.Error("Console stopped", zap.Error(err))
		return
	}
	e.logger.Info("Console closed")
}

// Done is closed when the console exits
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Stop releases the video output and stops the loop
func (e *Engine) Stop(ctx context.Context) error {
	e.logger.Info("Engine stopping...")

	err := e.loop.Call(ctx, func() error { return e.controller.Close(ctx) })
	e.loop.Stop()
	if e.cancel != nil {
		e.cancel()
	}
	e.wg.Wait()

	err = multierr.Append(err, e.console.Close())
	if err != nil {
		e.logger.Error("Engine stopped with errors", zap.Error(err))
		return err
	}
	e.logger.Info("Engine stopped")
	return nil
}
