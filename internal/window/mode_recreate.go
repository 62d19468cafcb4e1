//go:build windows || recreate
// +build windows recreate

package window

// DefaultFullScreenMode rebuilds the sink to leave full-screen. It is the
// default on Windows, where the video surface does not recover from a
// full-screen transition, and on any platform built with -tags recreate.
const DefaultFullScreenMode = ModeRecreate
