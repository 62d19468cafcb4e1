package display

import (
	"testing"

	"github.com/Taro3/linux-mp4-test/internal/domain"
	"go.uber.org/zap"
)

func TestCenter(t *testing.T) {
	screen := domain.Rect{Width: 1920, Height: 1080}

	tests := []struct {
		name     string
		screen   domain.Rect
		width    int
		height   int
		expected domain.Rect
	}{
		{
			name:     "Centered",
			screen:   screen,
			width:    960,
			height:   540,
			expected: domain.Rect{X: 480, Y: 270, Width: 960, Height: 540},
		},
		{
			name:     "Larger Than Screen",
			screen:   screen,
			width:    4000,
			height:   3000,
			expected: screen,
		},
		{
			name:     "Invalid Size Fills Screen",
			screen:   screen,
			width:    0,
			height:   -1,
			expected: screen,
		},
		{
			name:     "Secondary Origin",
			screen:   domain.Rect{X: 1920, Y: 0, Width: 1280, Height: 1024},
			width:    640,
			height:   480,
			expected: domain.Rect{X: 2240, Y: 272, Width: 640, Height: 480},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := center(tt.screen, tt.width, tt.height); got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestWindow_Resize(t *testing.T) {
	w := NewWindowOn(zap.NewNop(), domain.Rect{Width: 1920, Height: 1080}, 960, 540)

	expected := domain.Rect{X: 480, Y: 270, Width: 960, Height: 540}
	if got := w.Bounds(); got != expected {
		t.Errorf("expected %+v, got %+v", expected, got)
	}

	w.Resize(1280, 720)
	expected = domain.Rect{X: 320, Y: 180, Width: 1280, Height: 720}
	if got := w.Bounds(); got != expected {
		t.Errorf("expected %+v, got %+v", expected, got)
	}
}
