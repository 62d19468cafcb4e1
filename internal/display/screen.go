package display

import (
	"github.com/Taro3/linux-mp4-test/internal/domain"
	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

var fallbackScreen = domain.Rect{Width: 1920, Height: 1080}

// PrimaryScreen detects the primary display bounds at startup
func PrimaryScreen(logger *zap.Logger) domain.Rect {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		logger.Warn("No active displays detected, falling back to 1920x1080")
		return fallbackScreen
	}

	// Use primary monitor (index 0)
	b := screenshot.GetDisplayBounds(0)
	r := domain.Rect{
		X:      b.Min.X,
		Y:      b.Min.Y,
		Width:  b.Dx(),
		Height: b.Dy(),
	}

	logger.Info("Primary display detected",
		zap.Int("displays", n),
		zap.Int("width", r.Width),
		zap.Int("height", r.Height))

	return r
}
