//go:build linux
// +build linux

package inhibit

import (
	"github.com/Taro3/linux-mp4-test/internal/domain"
	"go.uber.org/zap"
)

// New connects to the session bus screensaver service. Without one,
// playback proceeds with a no-op inhibitor.
func New(logger *zap.Logger) domain.Inhibitor {
	conn, err := NewStdDBusClient()
	if err != nil {
		logger.Warn("Session bus unavailable, screensaver inhibition disabled", zap.Error(err))
		return Noop{}
	}

	if _, err := conn.GetNameOwner(screenSaverName); err != nil {
		logger.Warn("No screensaver service on the session bus", zap.Error(err))
		if cerr := conn.Close(); cerr != nil {
			logger.Warn("Failed to close D-Bus connection", zap.Error(cerr))
		}
		return Noop{}
	}

	logger.Info("Screensaver inhibition enabled")
	return NewScreenSaver(logger, conn)
}
