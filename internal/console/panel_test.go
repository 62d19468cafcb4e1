package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Taro3/linux-mp4-test/internal/domain"
	"github.com/Taro3/linux-mp4-test/internal/panel"
	"go.uber.org/zap"
)

func TestPanel_Output(t *testing.T) {
	var out bytes.Buffer
	p := NewPanel(zap.NewNop(), &out)

	p.ApplyControls(panel.ControlsFor(domain.StateStopped))
	p.ApplyControls(panel.ControlsFor(domain.StateStopped))
	p.ApplyControls(panel.ControlsFor(domain.StatePlaying))
	p.SetSeekRange(panel.SeekRangeFor(90 * time.Second))
	p.SetSeekPosition(12 * time.Second)
	p.SetPlaybackRate(domain.DefaultPlaybackRate)
	p.SetPlaybackRate(2)

	expected := []string{
		"Stopped. [play - -]",
		"Playing. [- pause stop]",
		"Length 1:30 (step 1s, page 9s)",
		"Rate 2.00x",
	}
	got := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(got) != len(expected) {
		t.Fatalf("expected %d lines, got %q", len(expected), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("line %d: expected %q, got %q", i, expected[i], got[i])
		}
	}

	if p.Position() != 12*time.Second {
		t.Errorf("expected position 12s, got %v", p.Position())
	}
	if p.Controls() != panel.ControlsFor(domain.StatePlaying) {
		t.Errorf("unexpected controls %+v", p.Controls())
	}
}
