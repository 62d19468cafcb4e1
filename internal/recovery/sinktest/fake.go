// Package sinktest provides an in-memory media engine for tests of the
// components that drive a VideoSink.
package sinktest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Taro3/linux-mp4-test/internal/domain"
)

// ErrClosed is returned by fakes used after Close
var ErrClosed = errors.New("fake closed")

type subscription struct {
	once sync.Once
	fn   func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.fn)
}

// listeners is a set of callbacks keyed by registration id
type listeners[T any] struct {
	next int
	fns  map[int]func(T)
}

func (l *listeners[T]) add(fn func(T)) domain.Subscription {
	if l.fns == nil {
		l.fns = make(map[int]func(T))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return &subscription{fn: func() { delete(l.fns, id) }}
}

func (l *listeners[T]) emit(v T) {
	for _, fn := range l.fns {
		fn(v)
	}
}

func (l *listeners[T]) len() int {
	return len(l.fns)
}

// Player is a fake domain.Player. Like a real engine, it reports the
// duration after the first Playing notification, not with it.
type Player struct {
	MediaDuration time.Duration
	// SeekGranularity rounds positions down, like a keyframe-bound engine
	SeekGranularity time.Duration

	source   string
	state    domain.PlaybackState
	position time.Duration
	volume   int
	rate     float64
	started  bool
	closed   bool
	output   domain.OutputSurface
	commands []string

	stateListeners    listeners[domain.PlaybackState]
	positionListeners listeners[time.Duration]
	rateListeners     listeners[float64]
	durationListeners listeners[time.Duration]
}

// NewPlayer creates a stopped player with engine defaults
func NewPlayer(duration time.Duration) *Player {
	return &Player{
		MediaDuration: duration,
		state:         domain.StateStopped,
		volume:        domain.DefaultVolume,
		rate:          domain.DefaultPlaybackRate,
	}
}

func (p *Player) setState(s domain.PlaybackState) {
	p.state = s
	p.stateListeners.emit(s)
}

func (p *Player) Play() error {
	if p.closed {
		return ErrClosed
	}
	p.commands = append(p.commands, "play")
	if p.source == "" {
		p.setState(domain.StateUnknown)
		return nil
	}
	p.setState(domain.StatePlaying)
	p.load()
	return nil
}

// load makes the duration known and reports it
func (p *Player) load() {
	if p.started {
		return
	}
	p.started = true
	p.durationListeners.emit(p.MediaDuration)
}

func (p *Player) Pause() error {
	if p.closed {
		return ErrClosed
	}
	p.commands = append(p.commands, "pause")
	if p.source == "" {
		p.setState(domain.StateUnknown)
		return nil
	}
	p.setState(domain.StatePaused)
	return nil
}

func (p *Player) Stop() error {
	if p.closed {
		return ErrClosed
	}
	p.commands = append(p.commands, "stop")
	if p.state != domain.StateStopped {
		p.position = 0
	}
	p.setState(domain.StateStopped)
	return nil
}

func (p *Player) SetSource(path string) error {
	if p.closed {
		return ErrClosed
	}
	p.source = path
	return nil
}

func (p *Player) Source() string { return p.source }

func (p *Player) SetPosition(pos time.Duration) error {
	if p.closed {
		return ErrClosed
	}
	if p.SeekGranularity > 0 {
		pos = pos.Truncate(p.SeekGranularity)
	}
	p.position = pos
	p.positionListeners.emit(pos)
	return nil
}

func (p *Player) Position() time.Duration { return p.position }

func (p *Player) Duration() time.Duration {
	if !p.started {
		return 0
	}
	return p.MediaDuration
}

func (p *Player) SetVolume(volume int) error {
	if p.closed {
		return ErrClosed
	}
	p.volume = volume
	return nil
}

func (p *Player) Volume() int { return p.volume }

func (p *Player) SetPlaybackRate(rate float64) error {
	if p.closed {
		return ErrClosed
	}
	p.rate = rate
	p.rateListeners.emit(rate)
	return nil
}

func (p *Player) PlaybackRate() float64 { return p.rate }

func (p *Player) State() domain.PlaybackState { return p.state }

func (p *Player) SetVideoOutput(surface domain.OutputSurface) error {
	if p.closed {
		return ErrClosed
	}
	p.output = surface
	return nil
}

func (p *Player) OnStateChanged(fn func(domain.PlaybackState)) domain.Subscription {
	return p.stateListeners.add(fn)
}

func (p *Player) OnPositionChanged(fn func(time.Duration)) domain.Subscription {
	return p.positionListeners.add(fn)
}

func (p *Player) OnPlaybackRateChanged(fn func(float64)) domain.Subscription {
	return p.rateListeners.add(fn)
}

func (p *Player) OnDurationChanged(fn func(time.Duration)) domain.Subscription {
	return p.durationListeners.add(fn)
}

func (p *Player) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close was called
func (p *Player) Closed() bool { return p.closed }

// Output returns the surface set with SetVideoOutput
func (p *Player) Output() domain.OutputSurface { return p.output }

// Commands returns the play/pause/stop commands received, in order
func (p *Player) Commands() []string { return p.commands }

// Listeners returns the number of live subscriptions
func (p *Player) Listeners() int {
	return p.stateListeners.len() + p.positionListeners.len() +
		p.rateListeners.len() + p.durationListeners.len()
}

// EmitState simulates an engine-originated state change
func (p *Player) EmitState(s domain.PlaybackState) {
	p.setState(s)
	if s == domain.StatePlaying {
		p.load()
	}
}

// EmitPosition simulates playback progress
func (p *Player) EmitPosition(pos time.Duration) {
	p.position = pos
	p.positionListeners.emit(pos)
}

// Surface is a fake domain.OutputSurface
type Surface struct {
	brightness int
	fullScreen bool
	visible    bool
	geometry   domain.Rect
	closed     bool

	fullScreenListeners listeners[bool]
}

// NewSurface creates a hidden, windowed surface
func NewSurface() *Surface {
	return &Surface{}
}

func (s *Surface) SetBrightness(level int) error {
	if s.closed {
		return ErrClosed
	}
	s.brightness = level
	return nil
}

func (s *Surface) Brightness() int { return s.brightness }

func (s *Surface) SetFullScreen(on bool) error {
	if s.closed {
		return ErrClosed
	}
	if s.fullScreen == on {
		return nil
	}
	s.fullScreen = on
	s.fullScreenListeners.emit(on)
	return nil
}

func (s *Surface) IsFullScreen() bool { return s.fullScreen }

func (s *Surface) OnFullScreenChanged(fn func(bool)) domain.Subscription {
	return s.fullScreenListeners.add(fn)
}

func (s *Surface) Show() error {
	if s.closed {
		return ErrClosed
	}
	s.visible = true
	return nil
}

func (s *Surface) SetGeometry(r domain.Rect) error {
	if s.closed {
		return ErrClosed
	}
	s.geometry = r
	return nil
}

func (s *Surface) Close() error {
	s.closed = true
	return nil
}

// Visible reports whether Show was called
func (s *Surface) Visible() bool { return s.visible }

// Geometry returns the last geometry set
func (s *Surface) Geometry() domain.Rect { return s.geometry }

// Closed reports whether Close was called
func (s *Surface) Closed() bool { return s.closed }

// Listeners returns the number of live subscriptions
func (s *Surface) Listeners() int { return s.fullScreenListeners.len() }

// ReadySurface is a Surface that reports readiness through domain.ReadyNotifier
type ReadySurface struct {
	*Surface
	readyListeners listeners[struct{}]
}

// NewReadySurface creates a surface implementing domain.ReadyNotifier
func NewReadySurface() *ReadySurface {
	return &ReadySurface{Surface: NewSurface()}
}

func (s *ReadySurface) OnReady(fn func()) domain.Subscription {
	return s.readyListeners.add(func(struct{}) { fn() })
}

// Ready fires the ready notification
func (s *ReadySurface) Ready() {
	s.readyListeners.emit(struct{}{})
}

// Factory builds fake sinks and records every instance it created
type Factory struct {
	Duration    time.Duration
	Granularity time.Duration
	// WithReady makes new surfaces implement domain.ReadyNotifier
	WithReady bool

	PlayerErr  error
	SurfaceErr error

	Players  []*Player
	Surfaces []domain.OutputSurface
}

func (f *Factory) NewPlayer(ctx context.Context) (domain.Player, error) {
	if f.PlayerErr != nil {
		return nil, f.PlayerErr
	}
	p := NewPlayer(f.Duration)
	p.SeekGranularity = f.Granularity
	f.Players = append(f.Players, p)
	return p, nil
}

func (f *Factory) NewSurface(ctx context.Context) (domain.OutputSurface, error) {
	if f.SurfaceErr != nil {
		return nil, f.SurfaceErr
	}
	var s domain.OutputSurface = NewSurface()
	if f.WithReady {
		s = NewReadySurface()
	}
	f.Surfaces = append(f.Surfaces, s)
	return s, nil
}

// LastPlayer returns the most recently created player
func (f *Factory) LastPlayer() *Player {
	if len(f.Players) == 0 {
		return nil
	}
	return f.Players[len(f.Players)-1]
}

// LastSurface returns the most recently created surface as a *Surface
func (f *Factory) LastSurface() *Surface {
	if len(f.Surfaces) == 0 {
		return nil
	}
	switch s := f.Surfaces[len(f.Surfaces)-1].(type) {
	case *Surface:
		return s
	case *ReadySurface:
		return s.Surface
	}
	return nil
}

// Scheduler queues continuations until Fire is called
type Scheduler struct {
	calls []*scheduled
}

type scheduled struct {
	delay     time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

func (s *Scheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	c := &scheduled{delay: d, fn: fn}
	s.calls = append(s.calls, c)
	return func() bool {
		if c.fired || c.cancelled {
			return false
		}
		c.cancelled = true
		return true
	}
}

// Fire runs every pending continuation and returns how many ran
func (s *Scheduler) Fire() int {
	n := 0
	calls := s.calls
	s.calls = nil
	for _, c := range calls {
		if c.cancelled || c.fired {
			continue
		}
		c.fired = true
		c.fn()
		n++
	}
	return n
}

// Pending returns the number of continuations not yet fired or cancelled
func (s *Scheduler) Pending() int {
	n := 0
	for _, c := range s.calls {
		if !c.cancelled && !c.fired {
			n++
		}
	}
	return n
}

// LastDelay returns the delay of the most recent AfterFunc call
func (s *Scheduler) LastDelay() time.Duration {
	if len(s.calls) == 0 {
		return 0
	}
	return s.calls[len(s.calls)-1].delay
}

// Container has fixed bounds
type Container struct {
	Rect domain.Rect
}

func (c Container) Bounds() domain.Rect { return c.Rect }

// ResizableContainer is a Container implementing domain.Resizer
type ResizableContainer struct {
	Rect domain.Rect
}

func (c *ResizableContainer) Bounds() domain.Rect { return c.Rect }

// Resize keeps the origin and changes the size
func (c *ResizableContainer) Resize(width, height int) domain.Rect {
	c.Rect.Width, c.Rect.Height = width, height
	return c.Rect
}

// Resolver returns a fixed path, or ErrNotFound-like errors when Err is set
type Resolver struct {
	Path  string
	Err   error
	Calls int
}

func (r *Resolver) Resolve() (string, error) {
	r.Calls++
	if r.Err != nil {
		return "", r.Err
	}
	return r.Path, nil
}
