//go:build linux
// +build linux

package media

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/subosito/gotenv"
)

const userDirsFile = "user-dirs.dirs"

// MoviesDirs returns the XDG videos directory, falling back to ~/Videos
func MoviesDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	if dir := os.Getenv("XDG_VIDEOS_DIR"); dir != "" {
		return []string{expandHome(dir, home)}
	}

	if dir := userDirsVideos(home); dir != "" {
		return []string{dir}
	}

	return []string{filepath.Join(home, "Videos")}
}

// userDirsVideos reads XDG_VIDEOS_DIR from the xdg-user-dirs configuration
func userDirsVideos(home string) string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	f, err := os.Open(filepath.Join(configHome, userDirsFile))
	if err != nil {
		return ""
	}
	defer f.Close()

	env, err := gotenv.StrictParse(f)
	if err != nil {
		return ""
	}
	return expandHome(env["XDG_VIDEOS_DIR"], home)
}

func expandHome(dir, home string) string {
	if dir == "" {
		return ""
	}
	dir = strings.Replace(dir, "$HOME", home, 1)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(home, dir)
	}
	return filepath.Clean(dir)
}
