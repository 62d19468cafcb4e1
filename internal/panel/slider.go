package panel

// SliderAction is a discrete slider interaction, as raised by keyboard
// shortcuts or clicks on the slider track
type SliderAction int

const (
	SliderNoAction SliderAction = iota
	SliderSingleStepAdd
	SliderSingleStepSub
	SliderPageStepAdd
	SliderPageStepSub
	SliderToMinimum
	SliderToMaximum
)

// Slider is an integer range control
type Slider struct {
	Min        int
	Max        int
	Value      int
	SingleStep int
	PageStep   int
}

// Trigger applies action and returns the new value
func (s *Slider) Trigger(action SliderAction) int {
	switch action {
	case SliderSingleStepAdd:
		s.SetValue(s.Value + s.SingleStep)
	case SliderSingleStepSub:
		s.SetValue(s.Value - s.SingleStep)
	case SliderPageStepAdd:
		s.SetValue(s.Value + s.PageStep)
	case SliderPageStepSub:
		s.SetValue(s.Value - s.PageStep)
	case SliderToMinimum:
		s.SetValue(s.Min)
	case SliderToMaximum:
		s.SetValue(s.Max)
	}
	return s.Value
}

// SetValue moves the slider, clamped to its range
func (s *Slider) SetValue(v int) {
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	s.Value = v
}

// VolumeSlider is drawn with its maximum at the minimum end of the track,
// so the jump-to-end actions are swapped. Step actions are not affected.
type VolumeSlider struct {
	Slider
}

// NewVolumeSlider creates a 0-100 volume slider at value
func NewVolumeSlider(value int) *VolumeSlider {
	s := &VolumeSlider{Slider: Slider{Min: 0, Max: 100, SingleStep: 1, PageStep: 10}}
	s.SetValue(value)
	return s
}

// Trigger applies action with the jump-to-end actions inverted
func (v *VolumeSlider) Trigger(action SliderAction) int {
	switch action {
	case SliderToMinimum:
		action = SliderToMaximum
	case SliderToMaximum:
		action = SliderToMinimum
	}
	return v.Slider.Trigger(action)
}
