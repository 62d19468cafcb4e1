package console

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Taro3/linux-mp4-test/internal/domain"
	"go.uber.org/zap"
)

// Panel renders the control panel as text lines. Seek position updates are
// frequent, so they are recorded but not printed.
type Panel struct {
	logger *zap.Logger
	out    io.Writer

	mu       sync.Mutex
	controls domain.ControlPanelState
	seek     domain.SeekRange
	position time.Duration
	rate     float64
}

// NewPanel creates a panel writing to out
func NewPanel(logger *zap.Logger, out io.Writer) *Panel {
	return &Panel{
		logger: logger,
		out:    out,
		rate:   domain.DefaultPlaybackRate,
	}
}

func (p *Panel) ApplyControls(state domain.ControlPanelState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if state == p.controls {
		return
	}
	p.controls = state
	p.printf("%s [%s]\n", state.StatusText, buttons(state))
}

func (p *Panel) SetSeekRange(r domain.SeekRange) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if r == p.seek {
		return
	}
	p.seek = r
	p.printf("Length %s (step %s, page %s)\n", clock(r.Maximum), r.SingleStep, r.PageStep)
}

func (p *Panel) SetSeekPosition(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = pos
}

func (p *Panel) SetPlaybackRate(rate float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if rate == p.rate {
		return
	}
	p.rate = rate
	p.printf("Rate %.2fx\n", rate)
}

// Controls returns the last applied control state
func (p *Panel) Controls() domain.ControlPanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.controls
}

// Position returns the seek slider value
func (p *Panel) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

func (p *Panel) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(p.out, format, args...); err != nil {
		p.logger.Debug("Failed to write panel output", zap.Error(err))
	}
}

func buttons(s domain.ControlPanelState) string {
	mark := func(name string, enabled bool) string {
		if enabled {
			return name
		}
		return "-"
	}
	return fmt.Sprintf("%s %s %s",
		mark("play", s.PlayEnabled),
		mark("pause", s.PauseEnabled),
		mark("stop", s.StopEnabled))
}
