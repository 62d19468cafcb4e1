//go:build windows || recreate
// +build windows recreate

package window

import "testing"

func TestDefaultFullScreenMode(t *testing.T) {
	if DefaultFullScreenMode != ModeRecreate {
		t.Errorf("expected %s, got %s", ModeRecreate, DefaultFullScreenMode)
	}
}
