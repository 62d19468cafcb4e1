package recovery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Taro3/linux-mp4-test/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	// ErrNoSink is returned by commands while no video sink is live
	ErrNoSink = errors.New("no video sink")
	// ErrRecreateFailed wraps failures to construct a replacement sink
	ErrRecreateFailed = errors.New("video sink recreation failed")
)

// MediaResolver locates the media file bound to new players
type MediaResolver interface {
	Resolve() (string, error)
}

// Handlers receive the notifications of the live sink on the UI loop
type Handlers struct {
	StateChanged      func(domain.PlaybackState)
	PositionChanged   func(time.Duration)
	RateChanged       func(float64)
	DurationChanged   func(time.Duration)
	FullScreenChanged func(bool)
	// Recovered runs once a recovery cycle has resumed playback
	Recovered func(state domain.PlaybackState)
}

// sink is the live player and surface pair with its subscriptions
type sink struct {
	player  domain.Player
	surface domain.OutputSurface
	subs    []domain.Subscription
}

// Manager owns the VideoSink and rebuilds it on demand.
// All methods must be called from the UI loop.
type Manager struct {
	logger    *zap.Logger
	factory   domain.SinkFactory
	resolver  MediaResolver
	container domain.Container
	scheduler domain.Scheduler
	settle    time.Duration
	handlers  Handlers

	sink      *sink
	settings  domain.PlaybackSettings
	mediaPath string

	// generation identifies the current recovery cycle; continuations of
	// older cycles are dropped
	generation   uint64
	pending      bool
	resumeState  domain.PlaybackState
	cancelSettle func() bool
	readySub     domain.Subscription
}

// NewManager creates a manager with no live sink. Attach builds the first one.
func NewManager(
	logger *zap.Logger,
	cfg domain.Config,
	factory domain.SinkFactory,
	resolver MediaResolver,
	container domain.Container,
	scheduler domain.Scheduler,
) *Manager {
	return &Manager{
		logger:      logger,
		factory:     factory,
		resolver:    resolver,
		container:   container,
		scheduler:   scheduler,
		settle:      cfg.GetSettleDelay(),
		settings:    domain.DefaultSettings(),
		resumeState: domain.StateStopped,
	}
}

// SetHandlers registers the notification handlers used for every sink built afterwards
func (m *Manager) SetHandlers(h Handlers) {
	m.handlers = h
}

// Attach builds the initial sink, binds the media source and shows the surface
func (m *Manager) Attach(ctx context.Context) error {
	if m.sink != nil {
		return nil
	}

	s, err := m.build(ctx)
	if err != nil {
		return err
	}
	m.sink = s
	m.bindSource(s.player)

	if err := m.reapply(s); err != nil {
		m.logger.Warn("Failed to apply initial settings", zap.Error(err))
	}
	m.showAndFit(s)

	m.logger.Info("Video sink attached", zap.String("media", m.mediaPath))
	m.notifyState(s.player.State())
	return nil
}

// Recreate tears down the live sink and builds a new one carrying over
// position, volume, rate, brightness and playback state. The new surface
// is shown and playback resumed after the settle delay, or as soon as the
// surface reports ready.
func (m *Manager) Recreate(ctx context.Context) error {
	m.capture()

	m.logger.Info("Recreating video sink",
		zap.String("resume", string(m.resumeState)),
		zap.Stringer("settings", m.settings))

	if err := m.teardown(); err != nil {
		m.logger.Warn("Errors while releasing video sink", zap.Error(err))
	}

	s, err := m.build(ctx)
	if err != nil {
		m.logger.Error("Video sink recreation failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrRecreateFailed, err)
	}
	m.sink = s
	m.bindSource(s.player)

	if err := m.reapply(s); err != nil {
		m.logger.Warn("Failed to reapply settings", zap.Error(err))
	}

	m.scheduleSettle(s)
	return nil
}

// capture records what the next sink must restore, before the live objects go away
func (m *Manager) capture() {
	if m.sink == nil || m.pending {
		// nothing live, or the previous cycle has not resumed yet: its
		// captured values are still the truth
		return
	}
	m.resumeState = m.sink.player.State()
	m.settings.Position = m.sink.player.Position()
}

// build constructs and wires a new player and surface
func (m *Manager) build(ctx context.Context) (*sink, error) {
	player, err := m.factory.NewPlayer(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	surface, err := m.factory.NewSurface(ctx)
	if err != nil {
		return nil, multierr.Append(
			fmt.Errorf("failed to create surface: %w", err),
			player.Close())
	}

	if err := player.SetVideoOutput(surface); err != nil {
		return nil, multierr.Combine(
			fmt.Errorf("failed to set video output: %w", err),
			surface.Close(),
			player.Close())
	}

	s := &sink{player: player, surface: surface}
	s.subs = append(s.subs,
		player.OnStateChanged(m.notifyState),
		player.OnPositionChanged(m.onPosition),
		player.OnPlaybackRateChanged(m.onRate),
		player.OnDurationChanged(m.onDuration),
		surface.OnFullScreenChanged(m.onFullScreen),
	)
	return s, nil
}

// bindSource binds the media file, resolving it once per manager
func (m *Manager) bindSource(p domain.Player) {
	if m.mediaPath == "" {
		path, err := m.resolver.Resolve()
		if err != nil {
			m.logger.Warn("Media source unresolved, player left unbound", zap.Error(err))
			return
		}
		m.mediaPath = path
	}

	if err := p.SetSource(m.mediaPath); err != nil {
		m.logger.Error("Failed to bind media source",
			zap.String("path", m.mediaPath),
			zap.Error(err))
	}
}

// reapply pushes the mirrored settings in order: position, volume, rate, brightness
func (m *Manager) reapply(s *sink) error {
	return multierr.Combine(
		s.player.SetPosition(m.settings.Position),
		s.player.SetVolume(m.settings.Volume),
		s.player.SetPlaybackRate(m.settings.PlaybackRate),
		s.surface.SetBrightness(m.settings.Brightness),
	)
}

func (m *Manager) scheduleSettle(s *sink) {
	m.generation++
	gen := m.generation
	m.pending = true

	continuation := func() {
		if gen != m.generation || !m.pending {
			return
		}
		m.finishRecovery(s)
	}

	if rn, ok := s.surface.(domain.ReadyNotifier); ok {
		m.readySub = rn.OnReady(continuation)
	}
	// upper bound when the surface never reports ready
	m.cancelSettle = m.scheduler.AfterFunc(m.settle, continuation)
}

// finishRecovery makes the new surface visible and resumes playback
func (m *Manager) finishRecovery(s *sink) {
	m.clearSettle()
	m.pending = false

	m.showAndFit(s)
	if err := m.resume(s.player, m.resumeState); err != nil {
		m.logger.Warn("Failed to resume playback", zap.Error(err))
	}

	state := s.player.State()
	m.logger.Info("Video sink recovered",
		zap.String("state", string(state)),
		zap.Stringer("settings", m.settings))

	m.notifyState(state)
	if m.handlers.Recovered != nil {
		m.handlers.Recovered(state)
	}
}

func (m *Manager) showAndFit(s *sink) {
	if err := s.surface.Show(); err != nil {
		m.logger.Warn("Failed to show surface", zap.Error(err))
	}
	if err := s.surface.SetGeometry(m.container.Bounds()); err != nil {
		m.logger.Warn("Failed to resize surface", zap.Error(err))
	}
}

// resume re-issues the captured state as a command; anything other than
// Playing or Paused resumes as Stopped
func (m *Manager) resume(p domain.Player, state domain.PlaybackState) error {
	switch state {
	case domain.StatePlaying:
		return p.Play()
	case domain.StatePaused:
		return p.Pause()
	default:
		return p.Stop()
	}
}

// teardown disconnects every notification before releasing the pair
func (m *Manager) teardown() error {
	m.clearSettle()
	if m.sink == nil {
		return nil
	}

	s := m.sink
	m.sink = nil
	for _, sub := range s.subs {
		sub.Unsubscribe()
	}

	return multierr.Combine(
		s.surface.Close(),
		s.player.Close(),
	)
}

func (m *Manager) clearSettle() {
	if m.cancelSettle != nil {
		m.cancelSettle()
		m.cancelSettle = nil
	}
	if m.readySub != nil {
		m.readySub.Unsubscribe()
		m.readySub = nil
	}
}

// Release tears down the live sink. The manager can Attach again afterwards.
func (m *Manager) Release() error {
	m.capture()
	m.pending = false
	m.generation++
	return m.teardown()
}

// Pending reports whether a recovery cycle is waiting to resume
func (m *Manager) Pending() bool {
	return m.pending
}

// Player returns the live player
func (m *Manager) Player() (domain.Player, error) {
	if m.sink == nil {
		return nil, ErrNoSink
	}
	return m.sink.player, nil
}

// Surface returns the live output surface
func (m *Manager) Surface() (domain.OutputSurface, error) {
	if m.sink == nil {
		return nil, ErrNoSink
	}
	return m.sink.surface, nil
}

// Settings returns the mirrored playback settings
func (m *Manager) Settings() domain.PlaybackSettings {
	return m.settings
}

// MediaPath returns the resolved media path, empty when unresolved
func (m *Manager) MediaPath() string {
	return m.mediaPath
}

// Seek moves the playback position
func (m *Manager) Seek(pos time.Duration) error {
	if pos < 0 {
		pos = 0
	}
	p, err := m.Player()
	if err != nil {
		return err
	}
	if err := p.SetPosition(pos); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	m.settings.Position = pos
	return nil
}

// SetVolume sets the volume, clamped to 0-100
func (m *Manager) SetVolume(volume int) error {
	volume = domain.ClampVolume(volume)
	p, err := m.Player()
	if err != nil {
		return err
	}
	if err := p.SetVolume(volume); err != nil {
		return fmt.Errorf("failed to set volume: %w", err)
	}
	m.settings.Volume = volume
	return nil
}

// SetPlaybackRate sets the speed multiplier
func (m *Manager) SetPlaybackRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRate, rate)
	}
	p, err := m.Player()
	if err != nil {
		return err
	}
	if err := p.SetPlaybackRate(rate); err != nil {
		return fmt.Errorf("failed to set playback rate: %w", err)
	}
	m.settings.PlaybackRate = rate
	return nil
}

// SetBrightness sets the brightness offset, clamped to -100..100
func (m *Manager) SetBrightness(level int) error {
	level = domain.ClampBrightness(level)
	s, err := m.Surface()
	if err != nil {
		return err
	}
	if err := s.SetBrightness(level); err != nil {
		return fmt.Errorf("failed to set brightness: %w", err)
	}
	m.settings.Brightness = level
	return nil
}

func (m *Manager) notifyState(state domain.PlaybackState) {
	if m.handlers.StateChanged != nil {
		m.handlers.StateChanged(state)
	}
}

func (m *Manager) onPosition(pos time.Duration) {
	if !m.pending {
		m.settings.Position = pos
	}
	if m.handlers.PositionChanged != nil {
		m.handlers.PositionChanged(pos)
	}
}

func (m *Manager) onRate(rate float64) {
	if rate > 0 {
		m.settings.PlaybackRate = rate
	}
	if m.handlers.RateChanged != nil {
		m.handlers.RateChanged(rate)
	}
}

func (m *Manager) onDuration(d time.Duration) {
	if m.handlers.DurationChanged != nil {
		m.handlers.DurationChanged(d)
	}
}

func (m *Manager) onFullScreen(on bool) {
	if m.handlers.FullScreenChanged != nil {
		m.handlers.FullScreenChanged(on)
	}
}
