//go:build !windows && !recreate
// +build !windows,!recreate

package window

// DefaultFullScreenMode toggles the surface directly
const DefaultFullScreenMode = ModeDirect
