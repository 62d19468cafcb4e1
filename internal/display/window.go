package display

import (
	"sync"

	"github.com/Taro3/linux-mp4-test/internal/domain"
	"go.uber.org/zap"
)

// Window is the windowed video area. It implements domain.Container and
// domain.Resizer.
type Window struct {
	logger *zap.Logger
	screen domain.Rect

	mu     sync.RWMutex
	bounds domain.Rect
}

var _ domain.Resizer = (*Window)(nil)

// NewWindow centers a window of the configured size on the primary display
func NewWindow(logger *zap.Logger, cfg domain.Config) *Window {
	width, height := cfg.GetWindowSize()
	return NewWindowOn(logger, PrimaryScreen(logger), width, height)
}

// NewWindowOn centers a width x height window on screen
func NewWindowOn(logger *zap.Logger, screen domain.Rect, width, height int) *Window {
	w := &Window{
		logger: logger,
		screen: screen,
	}
	w.bounds = center(screen, width, height)
	return w
}

// Bounds returns the current window area
func (w *Window) Bounds() domain.Rect {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.bounds
}

// Resize changes the window size, keeping it centered on the screen
func (w *Window) Resize(width, height int) domain.Rect {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.bounds = center(w.screen, width, height)
	w.logger.Debug("Window resized",
		zap.Int("width", w.bounds.Width),
		zap.Int("height", w.bounds.Height))
	return w.bounds
}

// center fits width x height inside screen and centers it
func center(screen domain.Rect, width, height int) domain.Rect {
	if width <= 0 || width > screen.Width {
		width = screen.Width
	}
	if height <= 0 || height > screen.Height {
		height = screen.Height
	}
	return domain.Rect{
		X:      screen.X + (screen.Width-width)/2,
		Y:      screen.Y + (screen.Height-height)/2,
		Width:  width,
		Height: height,
	}
}
