package panel

import "testing"

func TestVolumeSlider_InvertedJumps(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		action   SliderAction
		expected int
	}{
		{name: "Jump To Minimum Goes To Maximum", start: 40, action: SliderToMinimum, expected: 100},
		{name: "Jump To Maximum Goes To Minimum", start: 40, action: SliderToMaximum, expected: 0},
		{name: "Jump To Minimum At Maximum", start: 100, action: SliderToMinimum, expected: 100},
		{name: "Jump To Maximum At Minimum", start: 0, action: SliderToMaximum, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewVolumeSlider(tt.start)
			if got := s.Trigger(tt.action); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
			if s.Value != tt.expected {
				t.Errorf("slider value %d, want %d", s.Value, tt.expected)
			}
		})
	}
}

func TestSlider_Trigger(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		action   SliderAction
		expected int
	}{
		{name: "Single Step Add", start: 50, action: SliderSingleStepAdd, expected: 51},
		{name: "Single Step Sub", start: 50, action: SliderSingleStepSub, expected: 49},
		{name: "Page Step Add Clamped", start: 95, action: SliderPageStepAdd, expected: 100},
		{name: "Page Step Sub Clamped", start: 5, action: SliderPageStepSub, expected: 0},
		{name: "To Minimum", start: 50, action: SliderToMinimum, expected: 0},
		{name: "To Maximum", start: 50, action: SliderToMaximum, expected: 100},
		{name: "No Action", start: 50, action: SliderNoAction, expected: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Slider{Min: 0, Max: 100, SingleStep: 1, PageStep: 10, Value: tt.start}
			if got := s.Trigger(tt.action); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}
