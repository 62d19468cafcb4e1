//go:build windows
// +build windows

package media

import (
	"os"
	"path/filepath"
)

// MoviesDirs returns the Videos folder of the user profile
func MoviesDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(home, "Videos")}
}
