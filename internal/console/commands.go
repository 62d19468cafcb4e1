package console

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Taro3/linux-mp4-test/internal/domain"
	"github.com/Taro3/linux-mp4-test/internal/panel"
)

var (
	// ErrQuit is returned by the quit command
	ErrQuit = errors.New("quit")
	// ErrUnknownCommand is returned for input that names no command
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a command's arguments are malformed
	ErrUsage = errors.New("usage")
)

// Controller is the window controller surface driven from the console
type Controller interface {
	Play() error
	Pause() error
	Stop() error
	Seek(pos time.Duration) error
	SetVolume(level int) error
	TriggerVolume(action panel.SliderAction) error
	SetPlaybackRate(rate float64) error
	ResetPlaybackRate() error
	SetBrightness(level int) error
	ResetBrightness() error
	EnterFullScreen() error
	ExitFullScreen() error
	ToggleFullScreen() error
	ResizeWindow(width, height int) (domain.Rect, error)

	Controls() domain.ControlPanelState
	Settings() domain.PlaybackSettings
	IsFullScreen() bool
}

// Command is a parsed console line, run on the UI loop
type Command struct {
	Name string
	Run  func(c Controller) (string, error)
}

type entry struct {
	usage string
	parse func(args []string) (func(c Controller) (string, error), error)
}

func noArgs(fn func(c Controller) error) func([]string) (func(Controller) (string, error), error) {
	return func(args []string) (func(Controller) (string, error), error) {
		if len(args) != 0 {
			return nil, ErrUsage
		}
		return func(c Controller) (string, error) { return "", fn(c) }, nil
	}
}

var commands = map[string]entry{
	"play":     {usage: "play", parse: noArgs(Controller.Play)},
	"pause":    {usage: "pause", parse: noArgs(Controller.Pause)},
	"stop":     {usage: "stop", parse: noArgs(Controller.Stop)},
	"fs":       {usage: "fs", parse: noArgs(Controller.EnterFullScreen)},
	"dblclick": {usage: "dblclick", parse: noArgs(Controller.ToggleFullScreen)},
	"esc":      {usage: "esc", parse: noArgs(Controller.ExitFullScreen)},
	"seek":     {usage: "seek <90s|1m30s|90>", parse: parseSeek},
	"vol":      {usage: "vol <0-100>|min|max|up|down", parse: parseVolume},
	"rate":     {usage: "rate <x>|reset", parse: parseRate},
	"bright":   {usage: "bright <-100..100>|reset", parse: parseBrightness},
	"size":     {usage: "size <width>x<height>", parse: parseSize},
	"status": {usage: "status", parse: func(args []string) (func(Controller) (string, error), error) {
		if len(args) != 0 {
			return nil, ErrUsage
		}
		return func(c Controller) (string, error) { return Status(c), nil }, nil
	}},
	"quit": {usage: "quit", parse: func([]string) (func(Controller) (string, error), error) {
		return func(Controller) (string, error) { return "", ErrQuit }, nil
	}},
}

// Names returns the sorted command names
func Names() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Parse turns a console line into a command
func Parse(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{}, ErrUnknownCommand
	}

	name, args := fields[0], fields[1:]
	s, ok := commands[name]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	run, err := s.parse(args)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %s", err, s.usage)
	}
	return Command{Name: name, Run: run}, nil
}

func parseSeek(args []string) (func(Controller) (string, error), error) {
	if len(args) != 1 {
		return nil, ErrUsage
	}
	pos, err := parseDuration(args[0])
	if err != nil {
		return nil, ErrUsage
	}
	return func(c Controller) (string, error) { return "", c.Seek(pos) }, nil
}

// parseDuration accepts Go durations or plain seconds
func parseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(sec * float64(time.Second)), nil
}

// slider keys act on the volume slider as a keyboard would, so min and max
// follow its inverted track
var volumeActions = map[string]panel.SliderAction{
	"min":  panel.SliderToMinimum,
	"max":  panel.SliderToMaximum,
	"up":   panel.SliderPageStepAdd,
	"down": panel.SliderPageStepSub,
}

func parseVolume(args []string) (func(Controller) (string, error), error) {
	if len(args) != 1 {
		return nil, ErrUsage
	}
	if action, ok := volumeActions[args[0]]; ok {
		return func(c Controller) (string, error) { return "", c.TriggerVolume(action) }, nil
	}
	level, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, ErrUsage
	}
	return func(c Controller) (string, error) { return "", c.SetVolume(level) }, nil
}

func parseRate(args []string) (func(Controller) (string, error), error) {
	if len(args) != 1 {
		return nil, ErrUsage
	}
	if args[0] == "reset" {
		return func(c Controller) (string, error) { return "", c.ResetPlaybackRate() }, nil
	}
	rate, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "x"), 64)
	if err != nil {
		return nil, ErrUsage
	}
	return func(c Controller) (string, error) { return "", c.SetPlaybackRate(rate) }, nil
}

func parseBrightness(args []string) (func(Controller) (string, error), error) {
	if len(args) != 1 {
		return nil, ErrUsage
	}
	if args[0] == "reset" {
		return func(c Controller) (string, error) { return "", c.ResetBrightness() }, nil
	}
	level, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, ErrUsage
	}
	return func(c Controller) (string, error) { return "", c.SetBrightness(level) }, nil
}

func parseSize(args []string) (func(Controller) (string, error), error) {
	if len(args) != 1 {
		return nil, ErrUsage
	}
	w, h, ok := strings.Cut(args[0], "x")
	if !ok {
		return nil, ErrUsage
	}
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return nil, ErrUsage
	}
	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return nil, ErrUsage
	}
	return func(c Controller) (string, error) {
		r, err := c.ResizeWindow(width, height)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("window %dx%d at %d,%d", r.Width, r.Height, r.X, r.Y), nil
	}, nil
}

// Status renders a one-line summary of the controller
func Status(c Controller) string {
	controls := c.Controls()
	settings := c.Settings()
	mode := "windowed"
	if c.IsFullScreen() {
		mode = "full-screen"
	}
	return fmt.Sprintf("%s pos %s | vol %d | rate %.2fx | bright %d | %s",
		controls.StatusText,
		clock(settings.Position),
		settings.Volume,
		settings.PlaybackRate,
		settings.Brightness,
		mode)
}

func clock(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
