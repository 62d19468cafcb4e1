//go:build !linux
// +build !linux

package inhibit

import (
	"github.com/Taro3/linux-mp4-test/internal/domain"
	"go.uber.org/zap"
)

// New returns a no-op inhibitor on non-Linux platforms
func New(logger *zap.Logger) domain.Inhibitor {
	logger.Debug("Screensaver inhibition is only supported on Linux")
	return Noop{}
}
