package inhibit

import (
	"context"
	"fmt"
	"sync"

	"github.com/Taro3/linux-mp4-test/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	appName = "mp4player"
	reason  = "Playing video"
)

// ScreenSaver holds a screensaver inhibition for as long as video plays
type ScreenSaver struct {
	logger *zap.Logger
	conn   DBusClient

	mu     sync.Mutex
	cookie uint32
	held   bool
}

// NewScreenSaver creates an inhibitor over an established D-Bus connection
func NewScreenSaver(logger *zap.Logger, conn DBusClient) *ScreenSaver {
	return &ScreenSaver{
		logger: logger,
		conn:   conn,
	}
}

// Update inhibits while state is Playing and releases otherwise
func (s *ScreenSaver) Update(ctx context.Context, state domain.PlaybackState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state == domain.StatePlaying {
		return s.inhibit(ctx)
	}
	return s.uninhibit(ctx)
}

func (s *ScreenSaver) inhibit(ctx context.Context) error {
	if s.held {
		return nil
	}
	cookie, err := s.conn.Inhibit(ctx, appName, reason)
	if err != nil {
		return fmt.Errorf("failed to inhibit screensaver: %w", err)
	}
	s.cookie = cookie
	s.held = true
	s.logger.Debug("Screensaver inhibited", zap.Uint32("cookie", cookie))
	return nil
}

func (s *ScreenSaver) uninhibit(ctx context.Context) error {
	if !s.held {
		return nil
	}
	if err := s.conn.UnInhibit(ctx, s.cookie); err != nil {
		return fmt.Errorf("failed to release screensaver: %w", err)
	}
	s.logger.Debug("Screensaver released", zap.Uint32("cookie", s.cookie))
	s.held = false
	s.cookie = 0
	return nil
}

// Release drops any held inhibition and closes the connection
func (s *ScreenSaver) Release(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return multierr.Append(s.uninhibit(ctx), s.conn.Close())
}

// Held reports whether an inhibition is active
func (s *ScreenSaver) Held() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held
}

// Noop is used where no screensaver service is reachable
type Noop struct{}

func (Noop) Update(context.Context, domain.PlaybackState) error { return nil }

func (Noop) Release(context.Context) error { return nil }
