package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Taro3/linux-mp4-test/internal/uiloop"
	"go.uber.org/zap"
)

type fakeController struct {
	mu       sync.Mutex
	startErr error
	started  bool
	closed   bool
}

func (c *fakeController) Start(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = true
	return c.startErr
}

func (c *fakeController) Close(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// fakeConsole blocks in Run until quit is closed
type fakeConsole struct {
	quit   chan struct{}
	closed bool
}

func (c *fakeConsole) Run(ctx context.Context) error {
	select {
	case <-c.quit:
	case <-ctx.Done():
	}
	return nil
}

func (c *fakeConsole) Close() error {
	c.closed = true
	return nil
}

func TestEngine_Lifecycle(t *testing.T) {
	tests := []struct {
		name     string
		startErr error
	}{
		{name: "Attached"},
		{name: "Degraded Start Keeps Running", startErr: errors.New("no engine")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := &fakeController{startErr: tt.startErr}
			con := &fakeConsole{quit: make(chan struct{})}
			e := NewEngine(zap.NewNop(), uiloop.New(zap.NewNop()), ctrl, con)

			if err := e.Start(t.Context()); err != nil {
				t.Fatalf("start failed: %v", err)
			}
			if !ctrl.started {
				t.Error("expected controller to be started")
			}

			close(con.quit)
			select {
			case <-e.Done():
			case <-time.After(2 * time.Second):
				t.Fatal("engine did not report console exit")
			}

			if err := e.Stop(t.Context()); err != nil {
				t.Fatalf("stop failed: %v", err)
			}
			if !ctrl.closed {
				t.Error("expected controller to be closed")
			}
			if !con.closed {
				t.Error("expected console to be closed")
			}
		})
	}
}
