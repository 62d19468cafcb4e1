package mpv

import (
	"fmt"

	"github.com/Taro3/linux-mp4-test/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Surface is the window of the mpv player it is attached to. Settings made
// before attachment are applied on attach. The window stays minimized
// until Show.
type Surface struct {
	logger *zap.Logger
	client *Client

	brightness int
	fullScreen bool
	geometry   domain.Rect
	visible    bool
	closed     bool

	fullScreenListeners listeners[bool]
	readyListeners      listeners[struct{}]
}

// NewSurface creates a detached surface
func NewSurface(logger *zap.Logger) *Surface {
	return &Surface{logger: logger}
}

func (s *Surface) attach(c *Client) error {
	if s.closed {
		return ErrClosed
	}
	s.client = c

	err := multierr.Combine(
		c.SetProperty("force-window", "yes"),
		c.SetProperty("window-minimized", !s.visible),
		c.SetProperty("brightness", s.brightness),
		c.SetProperty("fullscreen", s.fullScreen),
	)
	if s.geometry != (domain.Rect{}) {
		err = multierr.Append(err, c.SetProperty("geometry", geometry(s.geometry)))
	}
	if err != nil {
		return fmt.Errorf("failed to attach surface: %w", err)
	}
	return nil
}

func (s *Surface) set(name string, value any) error {
	if s.closed {
		return ErrClosed
	}
	if s.client == nil {
		return nil
	}
	return s.client.SetProperty(name, value)
}

func (s *Surface) SetBrightness(level int) error {
	if err := s.set("brightness", level); err != nil {
		return err
	}
	s.brightness = level
	return nil
}

func (s *Surface) Brightness() int { return s.brightness }

func (s *Surface) SetFullScreen(on bool) error {
	if err := s.set("fullscreen", on); err != nil {
		return err
	}
	s.fullScreen = on
	return nil
}

func (s *Surface) IsFullScreen() bool { return s.fullScreen }

func (s *Surface) OnFullScreenChanged(fn func(bool)) domain.Subscription {
	return s.fullScreenListeners.add(fn)
}

// OnReady fires when mpv reconfigures its video output, the first point a
// new window can render
func (s *Surface) OnReady(fn func()) domain.Subscription {
	return s.readyListeners.add(func(struct{}) { fn() })
}

func (s *Surface) Show() error {
	if err := s.set("window-minimized", false); err != nil {
		return err
	}
	s.visible = true
	return nil
}

func (s *Surface) SetGeometry(r domain.Rect) error {
	if r.Width <= 0 || r.Height <= 0 {
		return nil
	}
	if err := s.set("geometry", geometry(r)); err != nil {
		return err
	}
	s.geometry = r
	return nil
}

// Close detaches the surface. The window goes away with its player.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.client == nil {
		return nil
	}

	err := s.client.SetProperty("force-window", "no")
	s.client = nil
	if err != nil {
		s.logger.Debug("Failed to release mpv window", zap.Error(err))
	}
	return nil
}

// fullScreenChanged records a full-screen change made inside mpv
func (s *Surface) fullScreenChanged(on bool) {
	if s.closed || on == s.fullScreen {
		return
	}
	s.fullScreen = on
	s.fullScreenListeners.emit(on)
}

func (s *Surface) ready() {
	if s.closed {
		return
	}
	s.readyListeners.emit(struct{}{})
}

func geometry(r domain.Rect) string {
	return fmt.Sprintf("%dx%d%+d%+d", r.Width, r.Height, r.X, r.Y)
}
