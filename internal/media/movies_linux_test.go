//go:build linux
// +build linux

package media

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMoviesDirs_Linux(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	t.Run("XDG_VIDEOS_DIR Environment", func(t *testing.T) {
		t.Setenv("XDG_VIDEOS_DIR", "/srv/videos")
		dirs := MoviesDirs()
		if len(dirs) != 1 || dirs[0] != "/srv/videos" {
			t.Errorf("expected [/srv/videos], got %v", dirs)
		}
	})

	t.Run("user-dirs.dirs", func(t *testing.T) {
		configHome := t.TempDir()
		content := "# written by xdg-user-dirs-update\nXDG_VIDEOS_DIR=\"/data/Filme\"\n"
		if err := os.WriteFile(filepath.Join(configHome, userDirsFile), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("XDG_VIDEOS_DIR", "")
		t.Setenv("XDG_CONFIG_HOME", configHome)

		dirs := MoviesDirs()
		if len(dirs) != 1 || dirs[0] != "/data/Filme" {
			t.Errorf("expected [/data/Filme], got %v", dirs)
		}
	})

	t.Run("Default Videos Folder", func(t *testing.T) {
		t.Setenv("XDG_VIDEOS_DIR", "")
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		dirs := MoviesDirs()
		want := filepath.Join(home, "Videos")
		if len(dirs) != 1 || dirs[0] != want {
			t.Errorf("expected [%s], got %v", want, dirs)
		}
	})
}

func TestExpandHome(t *testing.T) {
	tests := []struct {
		dir      string
		expected string
	}{
		{"", ""},
		{"$HOME/Videos", "/home/taro/Videos"},
		{"Videos", "/home/taro/Videos"},
		{"/mnt/media/", "/mnt/media"},
	}

	for _, tt := range tests {
		if got := expandHome(tt.dir, "/home/taro"); got != tt.expected {
			t.Errorf("expandHome(%q): expected %q, got %q", tt.dir, tt.expected, got)
		}
	}
}
