package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNewAppConfig(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name           string
		env            map[string]string
		expectedBinary string
		expectedSocket string
		expectedSettle time.Duration
		expectedWidth  int
		expectedHeight int
	}{
		{
			name:           "Defaults",
			expectedBinary: "mpv",
			expectedSocket: os.TempDir(),
			expectedSettle: 300 * time.Millisecond,
			expectedWidth:  960,
			expectedHeight: 540,
		},
		{
			name: "Environment Overrides",
			env: map[string]string{
				"MP4PLAYER_MPV_BINARY":    "/opt/mpv/bin/mpv",
				"MP4PLAYER_SOCKET_DIR":    "/run/user/1000",
				"MP4PLAYER_SETTLE_DELAY":  "1s",
				"MP4PLAYER_WINDOW_WIDTH":  "1280",
				"MP4PLAYER_WINDOW_HEIGHT": "720",
			},
			expectedBinary: "/opt/mpv/bin/mpv",
			expectedSocket: "/run/user/1000",
			expectedSettle: time.Second,
			expectedWidth:  1280,
			expectedHeight: 720,
		},
		{
			name:           "Tilde Expansion",
			env:            map[string]string{"MP4PLAYER_SOCKET_DIR": "~/sockets"},
			expectedBinary: "mpv",
			expectedSocket: filepath.Join(home, "sockets"),
			expectedSettle: 300 * time.Millisecond,
			expectedWidth:  960,
			expectedHeight: 540,
		},
		{
			name: "Invalid Values Fall Back",
			env: map[string]string{
				"MP4PLAYER_SETTLE_DELAY": "-5s",
				"MP4PLAYER_WINDOW_WIDTH": "0",
			},
			expectedBinary: "mpv",
			expectedSocket: os.TempDir(),
			expectedSettle: 300 * time.Millisecond,
			expectedWidth:  960,
			expectedHeight: 540,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := NewAppConfig(zap.NewNop())

			if got := cfg.GetMPVBinary(); got != tt.expectedBinary {
				t.Errorf("mpv binary: expected %q, got %q", tt.expectedBinary, got)
			}
			if got := cfg.GetSocketDir(); got != tt.expectedSocket {
				t.Errorf("socket dir: expected %q, got %q", tt.expectedSocket, got)
			}
			if got := cfg.GetSettleDelay(); got != tt.expectedSettle {
				t.Errorf("settle delay: expected %s, got %s", tt.expectedSettle, got)
			}
			w, h := cfg.GetWindowSize()
			if w != tt.expectedWidth || h != tt.expectedHeight {
				t.Errorf("window size: expected %dx%d, got %dx%d", tt.expectedWidth, tt.expectedHeight, w, h)
			}
		})
	}
}

func TestDebugEnabled(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{name: "Unset", value: "", expected: false},
		{name: "True", value: "true", expected: true},
		{name: "Numeric", value: "1", expected: true},
		{name: "False", value: "false", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MP4PLAYER_DEBUG", tt.value)
			if got := DebugEnabled(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
