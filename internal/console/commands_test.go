package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Taro3/linux-mp4-test/internal/domain"
	"github.com/Taro3/linux-mp4-test/internal/panel"
	"go.uber.org/zap"
)

type fakeController struct {
	calls      []string
	err        error
	fullScreen bool
	settings   domain.PlaybackSettings
	controls   domain.ControlPanelState
}

func (f *fakeController) record(format string, args ...any) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return f.err
}

func (f *fakeController) Play() error                     { return f.record("play") }
func (f *fakeController) Pause() error                    { return f.record("pause") }
func (f *fakeController) Stop() error                     { return f.record("stop") }
func (f *fakeController) Seek(pos time.Duration) error    { return f.record("seek %s", pos) }
func (f *fakeController) SetVolume(level int) error       { return f.record("volume %d", level) }
func (f *fakeController) SetPlaybackRate(r float64) error { return f.record("rate %g", r) }
func (f *fakeController) ResetPlaybackRate() error        { return f.record("rate reset") }
func (f *fakeController) SetBrightness(level int) error   { return f.record("bright %d", level) }
func (f *fakeController) ResetBrightness() error          { return f.record("bright reset") }
func (f *fakeController) EnterFullScreen() error          { return f.record("enter") }
func (f *fakeController) ExitFullScreen() error           { return f.record("escape") }
func (f *fakeController) ToggleFullScreen() error         { return f.record("toggle") }

func (f *fakeController) ResizeWindow(width, height int) (domain.Rect, error) {
	return domain.Rect{Width: width, Height: height}, f.record("size %dx%d", width, height)
}

func (f *fakeController) TriggerVolume(action panel.SliderAction) error {
	return f.record("volume action %d", action)
}

func (f *fakeController) Controls() domain.ControlPanelState { return f.controls }
func (f *fakeController) Settings() domain.PlaybackSettings  { return f.settings }
func (f *fakeController) IsFullScreen() bool                 { return f.fullScreen }

// directCaller runs work inline, standing in for the UI loop
type directCaller struct{}

func (directCaller) Call(_ context.Context, fn func() error) error { return fn() }

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		expected    string
		expectedErr error
	}{
		{name: "Play", line: "play", expected: "play"},
		{name: "Case Insensitive", line: "  PAUSE ", expected: "pause"},
		{name: "Stop", line: "stop", expected: "stop"},
		{name: "Seek Duration", line: "seek 1m30s", expected: "seek 1m30s"},
		{name: "Seek Seconds", line: "seek 12.5", expected: "seek 12.5s"},
		{name: "Volume Level", line: "vol 40", expected: "volume 40"},
		{name: "Volume Min Is Slider Jump", line: "vol min", expected: fmt.Sprintf("volume action %d", panel.SliderToMinimum)},
		{name: "Volume Up", line: "vol up", expected: fmt.Sprintf("volume action %d", panel.SliderPageStepAdd)},
		{name: "Rate", line: "rate 1.5x", expected: "rate 1.5"},
		{name: "Rate Reset", line: "rate reset", expected: "rate reset"},
		{name: "Negative Brightness", line: "bright -30", expected: "bright -30"},
		{name: "Brightness Reset", line: "bright reset", expected: "bright reset"},
		{name: "Enter Full-Screen", line: "fs", expected: "enter"},
		{name: "Double Click", line: "dblclick", expected: "toggle"},
		{name: "Escape", line: "esc", expected: "escape"},
		{name: "Window Size", line: "size 1280x720", expected: "size 1280x720"},
		{name: "Bad Window Size", line: "size 1280", expectedErr: ErrUsage},
		{name: "Zero Window Size", line: "size 0x720", expectedErr: ErrUsage},
		{name: "Unknown", line: "rewind", expectedErr: ErrUnknownCommand},
		{name: "Empty", line: "   ", expectedErr: ErrUnknownCommand},
		{name: "Missing Argument", line: "seek", expectedErr: ErrUsage},
		{name: "Bad Volume", line: "vol loud", expectedErr: ErrUsage},
		{name: "Extra Argument", line: "play now", expectedErr: ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.line)
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			ctrl := &fakeController{}
			if _, err := cmd.Run(ctrl); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if len(ctrl.calls) != 1 || ctrl.calls[0] != tt.expected {
				t.Errorf("expected call %q, got %v", tt.expected, ctrl.calls)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		ctrlErr     error
		expectedErr error
		expectedOut string
	}{
		{name: "Command Succeeds", line: "play"},
		{name: "Command Error Propagates", line: "play", ctrlErr: domain.ErrInvalidRate, expectedErr: domain.ErrInvalidRate},
		{name: "Quit", line: "quit", expectedErr: ErrQuit},
		{name: "Size Reports Bounds", line: "size 800x600", expectedOut: "window 800x600 at 0,0"},
		{name: "Status", line: "status", expectedOut: "Playing. pos 1:05 | vol 80 | rate 1.50x | bright -10 | full-screen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := &fakeController{
				err:        tt.ctrlErr,
				fullScreen: true,
				controls:   panel.ControlsFor(domain.StatePlaying),
				settings: domain.PlaybackSettings{
					Position:     65 * time.Second,
					Volume:       80,
					PlaybackRate: 1.5,
					Brightness:   -10,
				},
			}
			c := New(zap.NewNop(), nil, directCaller{}, ctrl)

			var out bytes.Buffer
			err := c.Execute(t.Context(), tt.line, &out)
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}
			if got := strings.TrimSpace(out.String()); got != tt.expectedOut {
				t.Errorf("expected output %q, got %q", tt.expectedOut, got)
			}
		})
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Duration
		expected string
	}{
		{name: "Zero", d: 0, expected: "0:00"},
		{name: "Seconds Rounded", d: 9600 * time.Millisecond, expected: "0:10"},
		{name: "Minutes", d: 3*time.Minute + 7*time.Second, expected: "3:07"},
		{name: "Hours", d: time.Hour + 2*time.Minute + 3*time.Second, expected: "1:02:03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clock(tt.d); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
