package mpv

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Taro3/linux-mp4-test/internal/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// observer ids
const (
	obsPause int64 = iota + 1
	obsIdle
	obsTimePos
	obsDuration
	obsSpeed
	obsVolume
	obsFullScreen
)

var observed = []struct {
	id   int64
	name string
}{
	{obsPause, "pause"},
	{obsIdle, "idle-active"},
	{obsTimePos, "time-pos"},
	{obsDuration, "duration"},
	{obsSpeed, "speed"},
	{obsVolume, "volume"},
	{obsFullScreen, "fullscreen"},
}

// Player is a domain.Player backed by its own mpv process.
// Methods and notifications run on the UI loop.
type Player struct {
	logger *zap.Logger
	proc   *Process

	source   string
	idle     bool
	paused   bool
	unknown  bool
	state    domain.PlaybackState
	start    time.Duration
	position time.Duration
	duration time.Duration
	volume   int
	rate     float64
	output   *Surface
	closed   bool

	stateListeners    listeners[domain.PlaybackState]
	positionListeners listeners[time.Duration]
	rateListeners     listeners[float64]
	durationListeners listeners[time.Duration]
}

// NewPlayer launches mpv and subscribes to the properties the player mirrors
func NewPlayer(ctx context.Context, logger *zap.Logger, cfg domain.Config, dispatcher domain.Dispatcher) (*Player, error) {
	p := newPlayer(logger)

	proc, err := Launch(ctx, logger, cfg, dispatcher, p.handleEvent)
	if err != nil {
		return nil, err
	}
	if err := p.attach(ctx, proc); err != nil {
		return nil, err
	}
	return p, nil
}

func newPlayer(logger *zap.Logger) *Player {
	return &Player{
		logger: logger,
		idle:   true,
		state:  domain.StateStopped,
		volume: domain.DefaultVolume,
		rate:   domain.DefaultPlaybackRate,
	}
}

func (p *Player) attach(ctx context.Context, proc *Process) error {
	p.proc = proc
	for _, o := range observed {
		if err := proc.Client().Observe(ctx, o.id, o.name); err != nil {
			return multierr.Append(err, proc.Close())
		}
	}
	return nil
}

func (p *Player) client() (*Client, error) {
	if p.closed {
		return nil, ErrClosed
	}
	return p.proc.Client(), nil
}

// Play starts the bound file, or resumes it when paused
func (p *Player) Play() error {
	return p.run(false)
}

// Pause loads the bound file paused when stopped, or pauses playback
func (p *Player) Pause() error {
	return p.run(true)
}

func (p *Player) run(pause bool) error {
	c, err := p.client()
	if err != nil {
		return err
	}
	if p.source == "" {
		p.logger.Warn("No media bound")
		p.unknown = true
		p.publishState()
		return nil
	}

	if err := c.SetProperty("pause", pause); err != nil {
		return err
	}
	if p.idle {
		if err := p.load(c); err != nil {
			return err
		}
	}
	p.idle = false
	p.paused = pause
	p.publishState()
	return nil
}

func (p *Player) load(c *Client) error {
	if err := c.SetProperty("start", seconds(p.start)); err != nil {
		return err
	}
	if err := c.Exec("loadfile", p.source, "replace"); err != nil {
		return fmt.Errorf("loadfile: %w", err)
	}
	// the offset applies to this load only; a replay starts from the top
	p.start = 0
	return nil
}

// Stop unloads the file and rewinds. An idle player keeps the position
// recorded with SetPosition.
func (p *Player) Stop() error {
	c, err := p.client()
	if err != nil {
		return err
	}
	if p.idle {
		p.unknown = false
		p.publishState()
		return nil
	}
	if err := c.Exec("stop"); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	p.idle = true
	p.unknown = false
	p.start = 0
	p.position = 0
	p.publishState()
	return nil
}

// SetSource binds a media file. It takes effect on the next Play or Pause.
func (p *Player) SetSource(path string) error {
	if p.closed {
		return ErrClosed
	}
	p.source = path
	p.unknown = false
	return nil
}

func (p *Player) Source() string { return p.source }

// SetPosition seeks, or records the start position while stopped
func (p *Player) SetPosition(pos time.Duration) error {
	c, err := p.client()
	if err != nil {
		return err
	}
	if p.idle {
		p.start = pos
		p.position = pos
		p.positionListeners.emit(pos)
		return nil
	}
	if err := c.Exec("seek", seconds(pos), "absolute"); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	p.position = pos
	return nil
}

func (p *Player) Position() time.Duration { return p.position }

func (p *Player) Duration() time.Duration { return p.duration }

func (p *Player) SetVolume(volume int) error {
	c, err := p.client()
	if err != nil {
		return err
	}
	if err := c.SetProperty("volume", volume); err != nil {
		return err
	}
	p.volume = volume
	return nil
}

func (p *Player) Volume() int { return p.volume }

func (p *Player) SetPlaybackRate(rate float64) error {
	c, err := p.client()
	if err != nil {
		return err
	}
	if err := c.SetProperty("speed", rate); err != nil {
		return err
	}
	p.rate = rate
	return nil
}

func (p *Player) PlaybackRate() float64 { return p.rate }

func (p *Player) State() domain.PlaybackState { return p.state }

// SetVideoOutput attaches an mpv surface, which renders into this player's window
func (p *Player) SetVideoOutput(surface domain.OutputSurface) error {
	c, err := p.client()
	if err != nil {
		return err
	}
	s, ok := surface.(*Surface)
	if !ok {
		return fmt.Errorf("%w: %T", ErrNotAttached, surface)
	}
	if err := s.attach(c); err != nil {
		return err
	}
	p.output = s
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

// Close quits the mpv process
func (p *Player) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return p.proc.Close()
}

func (p *Player) currentState() domain.PlaybackState {
	switch {
	case p.unknown:
		return domain.StateUnknown
	case p.idle:
		return domain.StateStopped
	case p.paused:
		return domain.StatePaused
	default:
		return domain.StatePlaying
	}
}

func (p *Player) publishState() {
	s := p.currentState()
	if s == p.state {
		return
	}
	p.state = s
	p.stateListeners.emit(s)
}

func (p *Player) handleEvent(ev Event) {
	if p.closed {
		return
	}

	switch ev.Name {
	case "property-change":
		p.handleProperty(ev)
	case "video-reconfig":
		if p.output != nil {
			p.output.ready()
		}
	case "end-file":
		p.logger.Debug("mpv file ended", zap.ByteString("data", ev.Data))
	}
}

func (p *Player) handleProperty(ev Event) {
	switch ev.ID {
	case obsPause:
		if v, ok := decode[bool](ev.Data); ok {
			p.paused = v
			p.publishState()
		}
	case obsIdle:
		if v, ok := decode[bool](ev.Data); ok {
			p.idle = v
			if v {
				p.duration = 0
			}
			p.publishState()
		}
	case obsTimePos:
		if v, ok := decode[float64](ev.Data); ok {
			p.position = duration(v)
			p.positionListeners.emit(p.position)
		}
	case obsDuration:
		if v, ok := decode[float64](ev.Data); ok && duration(v) != p.duration {
			p.duration = duration(v)
			p.durationListeners.emit(p.duration)
		}
	case obsSpeed:
		if v, ok := decode[float64](ev.Data); ok && v != p.rate {
			p.rate = v
			p.rateListeners.emit(v)
		}
	case obsVolume:
		if v, ok := decode[float64](ev.Data); ok {
			p.volume = int(v + 0.5)
		}
	case obsFullScreen:
		if v, ok := decode[bool](ev.Data); ok && p.output != nil {
			p.output.fullScreenChanged(v)
		}
	}
}

// decode reads a property value; null and malformed data report false
func decode[T any](data json.RawMessage) (T, bool) {
	var v *T
	if err := json.Unmarshal(data, &v); err != nil || v == nil {
		var zero T
		return zero, false
	}
	return *v, true
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func duration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}

type subscription struct {
	once sync.Once
	fn   func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.fn)
}

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
