package window

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Taro3/linux-mp4-test/internal/domain"
	"github.com/Taro3/linux-mp4-test/internal/panel"
	"github.com/Taro3/linux-mp4-test/internal/recovery"
	"go.uber.org/zap"
)

// ErrNotResizable is returned when the video container has a fixed size
var ErrNotResizable = errors.New("window cannot be resized")

// Controller is the window controller. It turns user commands and input
// intents into player operations and keeps the panel in sync with the
// engine. Every method must run on the UI loop.
type Controller struct {
	logger    *zap.Logger
	panel     domain.Panel
	sync      *panel.Synchronizer
	manager   *recovery.Manager
	container domain.Container
	inhibitor domain.Inhibitor
	mode      FullScreenMode
	volume    *panel.VolumeSlider

	ctx context.Context
}

// New creates a controller using the platform's full-screen mode
func New(
	logger *zap.Logger,
	p domain.Panel,
	manager *recovery.Manager,
	container domain.Container,
	inhibitor domain.Inhibitor,
) *Controller {
	return NewWithMode(logger, p, manager, container, inhibitor, DefaultFullScreenMode)
}

// NewWithMode creates a controller with an explicit full-screen mode
func NewWithMode(
	logger *zap.Logger,
	p domain.Panel,
	manager *recovery.Manager,
	container domain.Container,
	inhibitor domain.Inhibitor,
	mode FullScreenMode,
) *Controller {
	c := &Controller{
		logger:    logger,
		panel:     p,
		sync:      panel.NewSynchronizer(logger, p),
		manager:   manager,
		container: container,
		inhibitor: inhibitor,
		mode:      mode,
		volume:    panel.NewVolumeSlider(manager.Settings().Volume),
		ctx:       context.Background(),
	}

	manager.SetHandlers(recovery.Handlers{
		StateChanged:      c.onStateChanged,
		PositionChanged:   c.onPositionChanged,
		RateChanged:       c.onRateChanged,
		DurationChanged:   c.onDurationChanged,
		FullScreenChanged: c.onFullScreenChanged,
		Recovered:         c.onRecovered,
	})
	return c
}

// Start builds the initial video sink. A failure leaves the controller
// in the degraded state rather than aborting.
func (c *Controller) Start(ctx context.Context) error {
	c.ctx = ctx
	c.logger.Info("Window controller starting", zap.Stringer("fullScreenMode", c.mode))

	if err := c.manager.Attach(ctx); err != nil {
		c.degrade(err)
		return fmt.Errorf("failed to attach video sink: %w", err)
	}
	c.panel.SetPlaybackRate(c.manager.Settings().PlaybackRate)
	return nil
}

// Close releases the video sink and the screensaver inhibition
func (c *Controller) Close(ctx context.Context) error {
	c.logger.Info("Window controller closing")
	if err := c.inhibitor.Release(ctx); err != nil {
		c.logger.Warn("Failed to release screensaver inhibition", zap.Error(err))
	}
	return c.manager.Release()
}

// Play starts or resumes playback
func (c *Controller) Play() error {
	return c.withPlayer("play", domain.Player.Play)
}

// Pause pauses playback
func (c *Controller) Pause() error {
	return c.withPlayer("pause", domain.Player.Pause)
}

// Stop stops playback
func (c *Controller) Stop() error {
	return c.withPlayer("stop", domain.Player.Stop)
}

func (c *Controller) withPlayer(name string, fn func(domain.Player) error) error {
	p, err := c.manager.Player()
	if err != nil {
		c.logger.Warn("Command rejected", zap.String("command", name), zap.Error(err))
		return err
	}
	if err := fn(p); err != nil {
		c.logger.Error("Command failed", zap.String("command", name), zap.Error(err))
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Seek moves playback to pos
func (c *Controller) Seek(pos time.Duration) error {
	return c.logged("seek", c.manager.Seek(pos))
}

// SetVolume sets the volume on the 0-100 scale
func (c *Controller) SetVolume(level int) error {
	if err := c.manager.SetVolume(level); err != nil {
		return c.logged("set-volume", err)
	}
	c.volume.SetValue(c.manager.Settings().Volume)
	return nil
}

// TriggerVolume applies a discrete volume slider action
func (c *Controller) TriggerVolume(action panel.SliderAction) error {
	return c.SetVolume(c.volume.Trigger(action))
}

// SetPlaybackRate sets the speed multiplier
func (c *Controller) SetPlaybackRate(rate float64) error {
	return c.logged("set-playback-rate", c.manager.SetPlaybackRate(rate))
}

// ResetPlaybackRate returns to normal speed
func (c *Controller) ResetPlaybackRate() error {
	return c.SetPlaybackRate(domain.DefaultPlaybackRate)
}

// SetBrightness sets the brightness offset
func (c *Controller) SetBrightness(level int) error {
	return c.logged("set-brightness", c.manager.SetBrightness(level))
}

// ResetBrightness returns to neutral brightness
func (c *Controller) ResetBrightness() error {
	return c.SetBrightness(domain.DefaultBrightness)
}

func (c *Controller) logged(command string, err error) error {
	if err != nil {
		c.logger.Warn("Command failed", zap.String("command", command), zap.Error(err))
	}
	return err
}

// EnterFullScreen switches the surface to full-screen
func (c *Controller) EnterFullScreen() error {
	s, err := c.manager.Surface()
	if err != nil {
		return c.recover()
	}
	if s.IsFullScreen() {
		return nil
	}
	c.logger.Debug("Entering full-screen")
	return c.logged("enter-full-screen", s.SetFullScreen(true))
}

// ExitFullScreen handles the Escape intent. In recreate mode it always
// runs a recovery cycle.
func (c *Controller) ExitFullScreen() error {
	s, err := c.manager.Surface()
	if err != nil || c.mode == ModeRecreate {
		return c.recover()
	}
	if !s.IsFullScreen() {
		return nil
	}

	c.logger.Debug("Leaving full-screen")
	if err := s.SetFullScreen(false); err != nil {
		return c.logged("exit-full-screen", err)
	}
	c.fit(s)
	return nil
}

// ToggleFullScreen handles the double-click intent
func (c *Controller) ToggleFullScreen() error {
	s, err := c.manager.Surface()
	if err != nil {
		return c.recover()
	}
	if s.IsFullScreen() {
		return c.ExitFullScreen()
	}
	return c.EnterFullScreen()
}

// IsFullScreen reports whether the live surface is full-screen
func (c *Controller) IsFullScreen() bool {
	s, err := c.manager.Surface()
	return err == nil && s.IsFullScreen()
}

// Resize fits the surface to its container after the window moved or resized
func (c *Controller) Resize() {
	s, err := c.manager.Surface()
	if err != nil || s.IsFullScreen() {
		return
	}
	c.fit(s)
}

// ResizeWindow resizes the windowed video area and fits the surface to it
func (c *Controller) ResizeWindow(width, height int) (domain.Rect, error) {
	r, ok := c.container.(domain.Resizer)
	if !ok {
		return domain.Rect{}, ErrNotResizable
	}
	bounds := r.Resize(width, height)
	c.Resize()
	return bounds, nil
}

// Controls returns the control state currently shown
func (c *Controller) Controls() domain.ControlPanelState {
	return c.sync.Current()
}

// Settings returns the mirrored playback settings
func (c *Controller) Settings() domain.PlaybackSettings {
	return c.manager.Settings()
}

// Mode returns the full-screen mode in use
func (c *Controller) Mode() FullScreenMode {
	return c.mode
}

func (c *Controller) recover() error {
	if err := c.manager.Recreate(c.ctx); err != nil {
		c.degrade(err)
		return err
	}
	return nil
}

// degrade shows the controls for an unknown state while no sink is live
func (c *Controller) degrade(err error) {
	c.logger.Error("Video output unavailable", zap.Error(err))
	c.sync.Sync(domain.StateUnknown, 0)
	if err := c.inhibitor.Update(c.ctx, domain.StateUnknown); err != nil {
		c.logger.Warn("Failed to update screensaver inhibition", zap.Error(err))
	}
}

func (c *Controller) fit(s domain.OutputSurface) {
	if err := s.SetGeometry(c.container.Bounds()); err != nil {
		c.logger.Warn("Failed to resize surface", zap.Error(err))
	}
}

func (c *Controller) onStateChanged(state domain.PlaybackState) {
	var duration time.Duration
	if p, err := c.manager.Player(); err == nil {
		duration = p.Duration()
	}
	c.sync.Sync(state, duration)

	if err := c.inhibitor.Update(c.ctx, state); err != nil {
		c.logger.Warn("Failed to update screensaver inhibition", zap.Error(err))
	}
}

func (c *Controller) onPositionChanged(pos time.Duration) {
	c.panel.SetSeekPosition(pos)
}

func (c *Controller) onRateChanged(rate float64) {
	c.panel.SetPlaybackRate(rate)
}

// onDurationChanged sets the seek range once the engine knows the length,
// which is usually after the Playing notification of the first play
func (c *Controller) onDurationChanged(d time.Duration) {
	p, err := c.manager.Player()
	if err != nil || p.State() != domain.StatePlaying {
		return
	}
	c.sync.Sync(domain.StatePlaying, d)
}

func (c *Controller) onFullScreenChanged(on bool) {
	c.logger.Debug("Full-screen changed", zap.Bool("fullScreen", on))
	if on || c.mode != ModeDirect {
		return
	}
	if s, err := c.manager.Surface(); err == nil {
		c.fit(s)
	}
}

func (c *Controller) onRecovered(state domain.PlaybackState) {
	c.logger.Info("Recovery cycle complete", zap.String("state", string(state)))
	c.panel.SetPlaybackRate(c.manager.Settings().PlaybackRate)
	c.volume.SetValue(c.manager.Settings().Volume)
}
