package panel

import (
	"time"

	"github.com/Taro3/linux-mp4-test/internal/domain"
	"go.uber.org/zap"
)

const (
	seekSingleStep = time.Second
	seekPageParts  = 10
)

// ControlsFor maps an engine state to the visible control state.
// Any state other than Stopped, Playing or Paused is reported as unknown.
func ControlsFor(state domain.PlaybackState) domain.ControlPanelState {
	switch state {
	case domain.StateStopped:
		return domain.ControlPanelState{StatusText: "Stopped.", PlayEnabled: true}
	case domain.StatePlaying:
		return domain.ControlPanelState{StatusText: "Playing.", PauseEnabled: true, StopEnabled: true}
	case domain.StatePaused:
		return domain.ControlPanelState{StatusText: "Paused.", PlayEnabled: true, StopEnabled: true}
	default:
		return domain.ControlPanelState{StatusText: "Unknown.", PlayEnabled: true}
	}
}

// SeekRangeFor computes the seek slider bounds for a media duration
func SeekRangeFor(duration time.Duration) domain.SeekRange {
	if duration <= 0 {
		return domain.SeekRange{}
	}

	single := seekSingleStep
	if duration < single {
		single = duration
	}

	page := duration / seekPageParts
	if page < single {
		page = single
	}

	return domain.SeekRange{
		Maximum:    duration,
		SingleStep: single,
		PageStep:   page,
	}
}

// Synchronizer keeps the panel truthful about what the engine is doing.
// It must only be called from the UI loop.
type Synchronizer struct {
	logger  *zap.Logger
	panel   domain.Panel
	current domain.ControlPanelState
}

// NewSynchronizer creates a synchronizer bound to a panel
func NewSynchronizer(logger *zap.Logger, panel domain.Panel) *Synchronizer {
	return &Synchronizer{
		logger: logger,
		panel:  panel,
	}
}

// Sync applies the control state for state to the panel immediately.
// duration is consulted only for Playing, since the engine does not
// report a reliable duration before the first play.
func (s *Synchronizer) Sync(state domain.PlaybackState, duration time.Duration) domain.ControlPanelState {
	controls := ControlsFor(state)
	s.panel.ApplyControls(controls)
	s.current = controls

	if state == domain.StatePlaying {
		r := SeekRangeFor(duration)
		s.panel.SetSeekRange(r)
		s.logger.Debug("Seek range updated",
			zap.Duration("maximum", r.Maximum),
			zap.Duration("pageStep", r.PageStep))
	}

	s.logger.Debug("Controls synchronized",
		zap.String("state", string(state)),
		zap.String("status", controls.StatusText))

	return controls
}

// Current returns the last applied control state
func (s *Synchronizer) Current() domain.ControlPanelState {
	return s.current
}
