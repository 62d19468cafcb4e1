package mpv

import (
	"context"

	"github.com/Taro3/linux-mp4-test/internal/domain"
	"go.uber.org/zap"
)

// Factory builds mpv-backed sinks. Every player owns a separate mpv process.
type Factory struct {
	logger     *zap.Logger
	cfg        domain.Config
	dispatcher domain.Dispatcher
}

// NewFactory creates a sink factory delivering engine events through dispatcher
func NewFactory(logger *zap.Logger, cfg domain.Config, dispatcher domain.Dispatcher) *Factory {
	return &Factory{
		logger:     logger,
		cfg:        cfg,
		dispatcher: dispatcher,
	}
}

func (f *Factory) NewPlayer(ctx context.Context) (domain.Player, error) {
	return NewPlayer(ctx, f.logger.Named("mpv"), f.cfg, f.dispatcher)
}

func (f *Factory) NewSurface(ctx context.Context) (domain.OutputSurface, error) {
	return NewSurface(f.logger.Named("surface")), nil
}
