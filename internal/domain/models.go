package domain

import (
	"errors"
	"fmt"
	"time"
)

// PlaybackState represents the lifecycle state reported by the media engine
type PlaybackState string

const (
	// StateStopped indicates no media is playing and the position is rewound
	StateStopped PlaybackState = "Stopped"
	// StatePlaying indicates the media is currently playing
	StatePlaying PlaybackState = "Playing"
	// StatePaused indicates the media is paused
	StatePaused PlaybackState = "Paused"
	// StateUnknown is reported when the engine has no playable media bound
	StateUnknown PlaybackState = "Unknown"
)

// ControlPanelState is the UI-facing projection of a PlaybackState
type ControlPanelState struct {
	StatusText   string
	PauseEnabled bool
	PlayEnabled  bool
	StopEnabled  bool
}

// PlaybackSettings mirrors the user-adjustable playback settings.
// It lives as long as the window and is reapplied after a recovery cycle.
type PlaybackSettings struct {
	// Position is the current playback offset
	Position time.Duration
	// Volume on a 0-100 scale
	Volume int
	// PlaybackRate is a speed multiplier, 1.0 is normal speed
	PlaybackRate float64
	// Brightness is a signed offset in -100..100, 0 is neutral
	Brightness int
}

// String implements fmt.Stringer for log output
func (s PlaybackSettings) String() string {
	return fmt.Sprintf("position=%s volume=%d rate=%.2f brightness=%d",
		s.Position, s.Volume, s.PlaybackRate, s.Brightness)
}

// SeekRange describes the seek slider bounds, known only once playback started
type SeekRange struct {
	Maximum    time.Duration
	SingleStep time.Duration
	PageStep   time.Duration
}

// Rect is a screen-space rectangle in pixels
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

const (
	MinVolume     = 0
	MaxVolume     = 100
	DefaultVolume = 100

	MinBrightness     = -100
	MaxBrightness     = 100
	DefaultBrightness = 0

	DefaultPlaybackRate = 1.0
)

// ErrInvalidRate is returned for non-positive playback rates
var ErrInvalidRate = errors.New("playback rate must be positive")

// DefaultSettings returns the settings of a freshly constructed player
func DefaultSettings() PlaybackSettings {
	return PlaybackSettings{
		Volume:       DefaultVolume,
		PlaybackRate: DefaultPlaybackRate,
		Brightness:   DefaultBrightness,
	}
}

// ClampVolume limits v to the 0-100 scale
func ClampVolume(v int) int {
	return clamp(v, MinVolume, MaxVolume)
}

// ClampBrightness limits b to -100..100
func ClampBrightness(b int) int {
	return clamp(b, MinBrightness, MaxBrightness)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
