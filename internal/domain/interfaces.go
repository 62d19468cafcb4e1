package domain

import (
	"context"
	"time"
)

// Subscription is returned by every notification registration.
// Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
}

// Player defines the media engine half of a VideoSink.
// Notifications are delivered on the UI loop.
type Player interface {
	// Play starts or resumes playback of the bound source
	Play() error
	// Pause pauses playback
	Pause() error
	// Stop stops playback and rewinds. Stopping a stopped player keeps
	// its position.
	Stop() error

	// SetSource binds a local media file. An empty path unbinds.
	SetSource(path string) error
	// Source returns the bound media path, empty when unbound
	Source() string

	SetPosition(pos time.Duration) error
	Position() time.Duration
	// Duration is only reliable once playback has started. The engine
	// reports it through OnDurationChanged once the media is loaded.
	Duration() time.Duration

	SetVolume(volume int) error
	Volume() int

	SetPlaybackRate(rate float64) error
	PlaybackRate() float64

	// State returns the last state reported by the engine
	State() PlaybackState

	// SetVideoOutput wires the surface as the player's render target
	SetVideoOutput(surface OutputSurface) error

	OnStateChanged(fn func(PlaybackState)) Subscription
	OnPositionChanged(fn func(time.Duration)) Subscription
	OnPlaybackRateChanged(fn func(float64)) Subscription
	OnDurationChanged(fn func(time.Duration)) Subscription

	// Close releases the engine instance. The player is unusable afterwards.
	Close() error
}

// OutputSurface defines the render target half of a VideoSink
type OutputSurface interface {
	SetBrightness(level int) error
	Brightness() int

	SetFullScreen(on bool) error
	IsFullScreen() bool
	OnFullScreenChanged(fn func(bool)) Subscription

	// Show makes the surface visible
	Show() error
	// SetGeometry places the surface inside its container
	SetGeometry(r Rect) error

	Close() error
}

// ReadyNotifier is implemented by surfaces that can report when they are
// able to render after construction.
type ReadyNotifier interface {
	OnReady(fn func()) Subscription
}

// SinkFactory constructs the players and surfaces of new VideoSinks
type SinkFactory interface {
	NewPlayer(ctx context.Context) (Player, error)
	NewSurface(ctx context.Context) (OutputSurface, error)
}

// Panel defines the visible controls driven by the window controller
//
//go:generate mockgen -destination=mocks/panel_mock.go -package=mocks github.com/Taro3/linux-mp4-test/internal/domain Panel
type Panel interface {
	// ApplyControls updates the status text and the play/pause/stop buttons
	ApplyControls(state ControlPanelState)
	// SetSeekRange updates the seek slider bounds
	SetSeekRange(r SeekRange)
	// SetSeekPosition moves the seek slider
	SetSeekPosition(pos time.Duration)
	// SetPlaybackRate updates the rate display
	SetPlaybackRate(rate float64)
}

// Container provides the bounds of the area hosting the video surface
type Container interface {
	Bounds() Rect
}

// Resizer is implemented by containers the user can resize
type Resizer interface {
	Resize(width, height int) Rect
}

// Scheduler runs deferred work on the UI loop
type Scheduler interface {
	// AfterFunc schedules fn to run on the UI loop after d.
	// The returned function cancels the call if it has not started.
	AfterFunc(d time.Duration, fn func()) (cancel func() bool)
}

// Dispatcher posts work onto the UI loop
type Dispatcher interface {
	Post(fn func()) bool
}

// Inhibitor prevents the screensaver from starting while video is playing
type Inhibitor interface {
	Update(ctx context.Context, state PlaybackState) error
	Release(ctx context.Context) error
}

// Config defines the interface for application configuration
type Config interface {
	// GetMPVBinary returns the mpv executable name or path
	GetMPVBinary() string
	// GetSocketDir returns the directory for mpv IPC sockets
	GetSocketDir() string
	// GetSettleDelay returns the delay before a recreated surface is shown
	GetSettleDelay() time.Duration
	// GetWindowSize returns the windowed video area size
	GetWindowSize() (width, height int)
}
