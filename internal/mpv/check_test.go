package mpv

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-mpv")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func TestVersion(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		missing     bool
		expected    string
		expectError bool
	}{
		{
			name:     "Valid",
			body:     `printf 'mpv v0.38.0 Copyright © 2000-2024 mpv/MPlayer/mplayer2 projects\n built on today\n'`,
			expected: "mpv v0.38.0 Copyright © 2000-2024 mpv/MPlayer/mplayer2 projects",
		},
		{name: "Not mpv", body: `echo "something else"`, expectError: true},
		{name: "Fails", body: `exit 3`, expectError: true},
		{name: "Missing Binary", missing: true, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			binary := filepath.Join(t.TempDir(), "does-not-exist")
			if !tt.missing {
				binary = writeScript(t, tt.body)
			}

			got, err := Version(t.Context(), binary)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error, got version %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
