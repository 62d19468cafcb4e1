package window

// FullScreenMode selects how the controller leaves full-screen
type FullScreenMode int

const (
	// ModeDirect toggles the surface's own full-screen flag
	ModeDirect FullScreenMode = iota
	// ModeRecreate rebuilds the video sink to leave full-screen, for
	// platforms where the surface cannot resume after a transition
	ModeRecreate
)

// String implements fmt.Stringer
func (m FullScreenMode) String() string {
	switch m {
	case ModeDirect:
		return "direct"
	case ModeRecreate:
		return "recreate"
	default:
		return "unknown"
	}
}
